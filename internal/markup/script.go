package markup

import "unicode"

// Script names a block of characters that needs its own font.
type Script int

const (
	ScriptNone Script = iota
	ScriptCyrillic
	ScriptGreek
	ScriptCherokee
	ScriptCurrency
	ScriptDingbat
	ScriptDevanagari
)

func (s Script) String() string {
	switch s {
	case ScriptCyrillic:
		return "cyrillic"
	case ScriptGreek:
		return "greek"
	case ScriptCherokee:
		return "cherokee"
	case ScriptCurrency:
		return "currency"
	case ScriptDingbat:
		return "dingbat"
	case ScriptDevanagari:
		return "devanagari"
	default:
		return "none"
	}
}

var (
	currencyBlock = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x20A0, Hi: 0x20CF, Stride: 1}}}
	dingbatBlock  = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x2700, Hi: 0x27BF, Stride: 1}}}
)

var scriptTable = []struct {
	script Script
	table  *unicode.RangeTable
}{
	{ScriptCyrillic, unicode.Cyrillic},
	{ScriptGreek, unicode.Greek},
	{ScriptCherokee, unicode.Cherokee},
	{ScriptCurrency, currencyBlock},
	{ScriptDingbat, dingbatBlock},
	{ScriptDevanagari, unicode.Devanagari},
}

// ScriptOf reports which font block r belongs to.
func ScriptOf(r rune) Script {
	if r < 0x0370 {
		return ScriptNone
	}
	for _, entry := range scriptTable {
		if unicode.Is(entry.table, r) {
			return entry.script
		}
	}
	return ScriptNone
}
