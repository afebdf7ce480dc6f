package metrics

import "github.com/shopspring/decimal"

type RatioKind int

const (
	RatioPercent RatioKind = iota
	RatioCurrency
)

// Ratio is one labeled value derived from a snapshot.
type Ratio struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type ratioDef struct {
	key         string
	label       string
	kind        RatioKind
	numerator   Field
	denominator Field
}

var ratioDefs = []ratioDef{
	{"leads_to_contact", "Leads to Contact", RatioPercent, FieldContacts, FieldLeads},
	{"leads_to_scheduled", "Leads to Scheduled", RatioPercent, FieldScheduled, FieldLeads},
	{"leads_to_sits", "Leads to Sits", RatioPercent, FieldSits, FieldLeads},
	{"leads_to_sales", "Leads to Sales", RatioPercent, FieldSales, FieldLeads},
	{"ap_per_lead", "AP per Lead", RatioCurrency, FieldAP, FieldLeads},
	{"calls_to_contact", "Calls to Contact", RatioPercent, FieldContacts, FieldCalls},
	{"calls_to_scheduled", "Calls to Scheduled", RatioPercent, FieldScheduled, FieldCalls},
	{"calls_to_sits", "Calls to Sits", RatioPercent, FieldSits, FieldCalls},
	{"calls_to_sales", "Calls to Sales", RatioPercent, FieldSales, FieldCalls},
	{"ap_per_call", "AP per Call", RatioCurrency, FieldAP, FieldCalls},
	{"contact_to_scheduled", "Contact to Scheduled", RatioPercent, FieldScheduled, FieldContacts},
	{"contact_to_sits", "Contact to Sits", RatioPercent, FieldSits, FieldContacts},
	{"contact_to_sales", "Contact to Sales", RatioPercent, FieldSales, FieldContacts},
	{"ap_per_contact", "AP per Contact", RatioCurrency, FieldAP, FieldContacts},
	{"scheduled_to_sits", "Scheduled to Sits", RatioPercent, FieldSits, FieldScheduled},
	{"scheduled_to_sales", "Scheduled to Sales", RatioPercent, FieldSales, FieldScheduled},
	{"ap_per_scheduled", "AP per Scheduled", RatioCurrency, FieldAP, FieldScheduled},
	{"sits_to_sales", "Sits to Sales", RatioPercent, FieldSales, FieldSits},
	{"ap_per_sit", "AP per Sit", RatioCurrency, FieldAP, FieldSits},
	{"ap_per_sale", "AP per Sale", RatioCurrency, FieldAP, FieldSales},
}

const (
	zeroPercent  = "0%"
	zeroCurrency = "$0.00"
)

var hundred = decimal.NewFromInt(100)

// CalculateRatios derives the fixed, ordered ratio list. A zero denominator
// yields "0%" or "$0.00".
func CalculateRatios(s Snapshot) []Ratio {
	out := make([]Ratio, 0, len(ratioDefs))
	for _, def := range ratioDefs {
		out = append(out, Ratio{
			Key:   def.key,
			Label: def.label,
			Value: def.value(s),
		})
	}
	return out
}

func (d ratioDef) value(s Snapshot) string {
	num, den := s.Get(d.numerator), s.Get(d.denominator)
	if d.kind == RatioCurrency {
		if den == 0 {
			return zeroCurrency
		}
		return "$" + decimal.New(num, -2).DivRound(decimal.NewFromInt(den), 2).StringFixed(2)
	}
	if den == 0 {
		return zeroPercent
	}
	return decimal.NewFromInt(num).Mul(hundred).DivRound(decimal.NewFromInt(den), 2).String() + "%"
}

// FormatCents renders an amount of cents as dollars, e.g. 500000 -> "$5000.00".
func FormatCents(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}
