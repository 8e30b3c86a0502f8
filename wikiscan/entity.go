package wikiscan

import (
	"strconv"
	"unicode/utf8"
)

// MaxEntityLen bounds how far past an '&' the tokenizer looks for the
// terminating ';' of a character entity.
const MaxEntityLen = 10

// MaxEntityText is the largest decoded entity value in bytes.
const MaxEntityText = 8

// LookupEntity resolves an entity name, without its surrounding '&' and ';',
// into its UTF-8 text.
// Names in the static table are case sensitive; any other decimal ("#8212")
// or hexadecimal ("#x2014") character reference resolves to its code point.
func LookupEntity(name string) (string, bool) {
	if s, ok := entities[name]; ok {
		return s, true
	}
	if len(name) < 2 || name[0] != '#' {
		return "", false
	}
	var (
		n   uint64
		err error
	)
	if name[1] == 'x' || name[1] == 'X' {
		n, err = strconv.ParseUint(name[2:], 16, 32)
	} else {
		n, err = strconv.ParseUint(name[1:], 10, 32)
	}
	if err != nil || n == 0 {
		return "", false
	}
	r := rune(n)
	if !utf8.ValidRune(r) {
		return "", false
	}
	return string(r), true
}

var entities = map[string]string{
	// commercial
	"trade":  "™",
	"copy":   "©",
	"reg":    "®",
	"cent":   "¢",
	"euro":   "€",
	"yen":    "¥",
	"pound":  "£",
	"curren": "¤",

	// diacritics
	"Agrave": "À",
	"Aacute": "Á",
	"Acirc":  "Â",
	"Atilde": "Ã",
	"Auml":   "Ä",
	"Aring":  "Å",
	"AElig":  "Æ",
	"Ccedil": "Ç",
	"Egrave": "È",
	"Eacute": "É",
	"Ecirc":  "Ê",
	"Euml":   "Ë",
	"Igrave": "Ì",
	"Iacute": "Í",
	"Icirc":  "Î",
	"Iuml":   "Ï",
	"Ntilde": "Ñ",
	"Ograve": "Ò",
	"Oacute": "Ó",
	"Ocirc":  "Ô",
	"Otilde": "Õ",
	"Ouml":   "Ö",
	"Oslash": "Ø",
	"OElig":  "Œ",
	"Ugrave": "Ù",
	"Uacute": "Ú",
	"Ucirc":  "Û",
	"Uuml":   "Ü",
	"Yuml":   "Ÿ",
	"szlig":  "ß",
	"agrave": "à",
	"aacute": "á",
	"acirc":  "â",
	"atilde": "ã",
	"auml":   "ä",
	"aring":  "å",
	"aelig":  "æ",
	"ccedil": "ç",
	"egrave": "è",
	"eacute": "é",
	"ecirc":  "ê",
	"euml":   "ë",
	"igrave": "ì",
	"iacute": "í",
	"icirc":  "î",
	"iuml":   "ï",
	"ntilde": "ñ",
	"ograve": "ò",
	"oacute": "ó",
	"ocirc":  "ô",
	"otilde": "õ",
	"ouml":   "ö",
	"oslash": "ø",
	"oelig":  "œ",
	"ugrave": "ù",
	"uacute": "ú",
	"ucirc":  "û",
	"uuml":   "ü",
	"yuml":   "ÿ",

	// greek
	"alpha":   "α",
	"beta":    "β",
	"gamma":   "γ",
	"delta":   "δ",
	"epsilon": "ε",
	"zeta":    "ζ",
	"eta":     "η",
	"theta":   "θ",
	"iota":    "ι",
	"kappa":   "κ",
	"lambda":  "λ",
	"mu":      "μ",
	"nu":      "ν",
	"xi":      "ξ",
	"omicron": "ο",
	"pi":      "π",
	"rho":     "ρ",
	"sigmaf":  "ς",
	"sigma":   "σ",
	"tau":     "τ",
	"upsilon": "υ",
	"phi":     "φ",
	"chi":     "χ",
	"psi":     "ψ",
	"omega":   "ω",
	"Alpha":   "Α",
	"Beta":    "Β",
	"Gamma":   "Γ",
	"Delta":   "Δ",
	"Epsilon": "Ε",
	"Zeta":    "Ζ",
	"Eta":     "Η",
	"Theta":   "Θ",
	"Iota":    "Ι",
	"Kappa":   "Κ",
	"Lambda":  "Λ",
	"Mu":      "Μ",
	"Nu":      "Ν",
	"Xi":      "Ξ",
	"Omicron": "Ο",
	"Pi":      "Π",
	"Rho":     "Ρ",
	"Sigma":   "Σ",
	"Tau":     "Τ",
	"Upsilon": "Υ",
	"Phi":     "Φ",
	"Chi":     "Χ",
	"Psi":     "Ψ",
	"Omega":   "Ω",

	// math
	"int":     "∫",
	"sum":     "∑",
	"prod":    "∏",
	"radic":   "√",
	"minus":   "−",
	"plusmn":  "±",
	"infin":   "∞",
	"asymp":   "≈",
	"prop":    "∝",
	"equiv":   "≡",
	"ne":      "≠",
	"le":      "≤",
	"ge":      "≥",
	"times":   "×",
	"middot":  "·",
	"divide":  "÷",
	"part":    "∂",
	"prime":   "′",
	"Prime":   "″",
	"nabla":   "∇",
	"permil":  "‰",
	"deg":     "°",
	"there4":  "∴",
	"alefsym": "ℵ",
	"isin":    "∈",
	"notin":   "∉",
	"cap":     "∩",
	"cup":     "∪",
	"sub":     "⊂",
	"sup":     "⊃",
	"sube":    "⊆",
	"supe":    "⊇",
	"not":     "¬",
	"and":     "∧",
	"or":      "∨",
	"exist":   "∃",
	"forall":  "∀",
	"rArr":    "⇒",
	"lArr":    "⇐",
	"dArr":    "⇓",
	"uArr":    "⇑",
	"hArr":    "⇔",
	"rarr":    "→",
	"darr":    "↓",
	"uarr":    "↑",
	"larr":    "←",
	"harr":    "↔",

	// predefined in XML
	"quot": "\"",
	"amp":  "&",
	"apos": "'",
	"lt":   "<",
	"gt":   ">",

	// punctuation
	"iquest": "¿",
	"iexcl":  "¡",
	"sect":   "§",
	"para":   "¶",
	"dagger": "†",
	"Dagger": "‡",
	"bull":   "•",
	"ndash":  "–",
	"mdash":  "—",
	"lsaquo": "‹",
	"rsaquo": "›",
	"laquo":  "«",
	"raquo":  "»",
	"lsquo":  "‘",
	"rsquo":  "’",
	"ldquo":  "“",
	"rdquo":  "”",

	// sub and superscripts
	"#8320": "₀",
	"#8321": "₁",
	"#8322": "₂",
	"#8323": "₃",
	"#8324": "₄",
	"#8325": "₅",
	"#8326": "₆",
	"#8327": "₇",
	"#8328": "₈",
	"#8329": "₉",
	"#8304": "⁰",
	"sup1":  "¹",
	"sup2":  "²",
	"sup3":  "³",
	"#8308": "⁴",
	"#8309": "⁵",
	"#8310": "⁶",
	"#8311": "⁷",
	"#8312": "⁸",
	"#8313": "⁹",
}
