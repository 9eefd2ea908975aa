package render

import "strings"

var (
	wordsOnes  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	wordsTens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
	wordsTeens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
)

func underThousand(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return wordsOnes[n]
	case n < 20:
		return wordsTeens[n-10]
	case n < 100:
		s := wordsTens[n/10]
		if n%10 != 0 {
			s += " " + wordsOnes[n%10]
		}
		return s
	default:
		s := wordsOnes[n/100] + " Hundred"
		if n%100 != 0 {
			s += " " + underThousand(n%100)
		}
		return s
	}
}

// AmountInWords spells out a whole-rupee amount using the Indian numbering
// convention: groups of two digits (lakh, crore) above the first three.
func AmountInWords(amount int64) string {
	if amount == 0 {
		return "Zero Rupees"
	}

	var b strings.Builder
	if amount < 0 {
		b.WriteString("Minus ")
		amount = -amount
	}

	if amount < 1000 {
		b.WriteString(underThousand(amount))
		b.WriteString(" Rupees")
		return b.String()
	}

	crores := amount / 10000000
	lakhs := (amount % 10000000) / 100000
	thousands := (amount % 100000) / 1000
	remainder := amount % 1000

	var parts []string
	if crores > 0 {
		parts = append(parts, croreCount(crores)+" Crore")
	}
	if lakhs > 0 {
		parts = append(parts, underThousand(lakhs)+" Lakh")
	}
	if thousands > 0 {
		parts = append(parts, underThousand(thousands)+" Thousand")
	}
	if remainder > 0 {
		parts = append(parts, underThousand(remainder))
	}

	b.WriteString(strings.Join(parts, " "))
	b.WriteString(" Rupees")
	return b.String()
}

// croreCount spells the crore multiplier, which may itself exceed 999 and so
// recurses through the same grouping.
func croreCount(n int64) string {
	if n < 1000 {
		return underThousand(n)
	}
	return strings.TrimSuffix(AmountInWords(n), " Rupees")
}
