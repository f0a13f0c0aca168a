// symbols.go -
// Copyright (C) 2026  The texhs authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package filter

// symbols maps zero-argument commands to their Unicode replacement.
// The table combines the primitive symbols with the plain TeX names.
var symbols = map[string]string{}

func init() {
	for _, table := range []map[string]string{primitiveSymbols, plainSymbols} {
		for name, s := range table {
			symbols[name] = s
		}
	}
}

// primitiveSymbols are the engine-level names.
var primitiveSymbols = map[string]string{
	"%": "%",
	"&": "&",
	"#": "#",
	"$": "$",
	"_": "_",
	"{": "{",
	"}": "}",
	" ": " ",
	"-": "­", // soft hyphen (discretionary break)
}

// plainSymbols are the plain TeX and LaTeX text/math symbol names.
var plainSymbols = map[string]string{
	// Greek lower case.
	"alpha":      "α",
	"beta":       "β",
	"gamma":      "γ",
	"delta":      "δ",
	"epsilon":    "ϵ",
	"varepsilon": "ε",
	"zeta":       "ζ",
	"eta":        "η",
	"theta":      "θ",
	"vartheta":   "ϑ",
	"iota":       "ι",
	"kappa":      "κ",
	"lambda":     "λ",
	"mu":         "μ",
	"nu":         "ν",
	"xi":         "ξ",
	"pi":         "π",
	"varpi":      "ϖ",
	"rho":        "ρ",
	"varrho":     "ϱ",
	"sigma":      "σ",
	"varsigma":   "ς",
	"tau":        "τ",
	"upsilon":    "υ",
	"phi":        "ϕ",
	"varphi":     "φ",
	"chi":        "χ",
	"psi":        "ψ",
	"omega":      "ω",

	// Greek upper case.
	"Gamma":   "Γ",
	"Delta":   "Δ",
	"Theta":   "Θ",
	"Lambda":  "Λ",
	"Xi":      "Ξ",
	"Pi":      "Π",
	"Sigma":   "Σ",
	"Upsilon": "Υ",
	"Phi":     "Φ",
	"Psi":     "Ψ",
	"Omega":   "Ω",

	// Binary operators and relations.
	"pm":        "±",
	"mp":        "∓",
	"times":     "×",
	"div":       "÷",
	"cdot":      "⋅",
	"ast":       "∗",
	"circ":      "∘",
	"bullet":    "•",
	"cap":       "∩",
	"cup":       "∪",
	"vee":       "∨",
	"wedge":     "∧",
	"setminus":  "∖",
	"oplus":     "⊕",
	"ominus":    "⊖",
	"otimes":    "⊗",
	"le":        "≤",
	"leq":       "≤",
	"ge":        "≥",
	"geq":       "≥",
	"ne":        "≠",
	"neq":       "≠",
	"equiv":     "≡",
	"sim":       "∼",
	"simeq":     "≃",
	"approx":    "≈",
	"cong":      "≅",
	"propto":    "∝",
	"subset":    "⊂",
	"supset":    "⊃",
	"subseteq":  "⊆",
	"supseteq":  "⊇",
	"in":        "∈",
	"ni":        "∋",
	"notin":     "∉",
	"prec":      "≺",
	"succ":      "≻",
	"parallel":  "∥",
	"perp":      "⊥",
	"mid":       "∣",
	"colon":     ":",

	// Arrows.
	"leftarrow":      "←",
	"gets":           "←",
	"rightarrow":     "→",
	"to":             "→",
	"leftrightarrow": "↔",
	"Leftarrow":      "⇐",
	"Rightarrow":     "⇒",
	"Leftrightarrow": "⇔",
	"uparrow":        "↑",
	"downarrow":      "↓",
	"mapsto":         "↦",
	"hookrightarrow": "↪",
	"implies":        "⟹",
	"iff":            "⟺",

	// Big operators and delimiters.
	"sum":    "∑",
	"prod":   "∏",
	"int":    "∫",
	"oint":   "∮",
	"bigcap": "⋂",
	"bigcup": "⋃",
	"langle": "⟨",
	"rangle": "⟩",
	"lceil":  "⌈",
	"rceil":  "⌉",
	"lfloor": "⌊",
	"rfloor": "⌋",
	"|":      "‖",

	// Miscellaneous mathematics.
	"infty":      "∞",
	"partial":    "∂",
	"nabla":      "∇",
	"forall":     "∀",
	"exists":     "∃",
	"neg":        "¬",
	"lnot":       "¬",
	"emptyset":   "∅",
	"varnothing": "∅",
	"aleph":      "ℵ",
	"hbar":       "ℏ",
	"ell":        "ℓ",
	"Re":         "ℜ",
	"Im":         "ℑ",
	"wp":         "℘",
	"prime":      "′",
	"angle":      "∠",
	"surd":       "√",
	"top":        "⊤",
	"bot":        "⊥",
	"vdash":      "⊢",
	"dashv":      "⊣",
	"cdots":      "⋯",
	"vdots":      "⋮",
	"ddots":      "⋱",
	"ldots":      "…",
	"dots":       "…",
	"dotsc":      "…",
	"dotsb":      "⋯",

	// Text-mode symbols.
	"textendash":     "–",
	"textemdash":     "—",
	"textquoteleft":  "‘",
	"textquoteright": "’",
	"textbackslash":  "\\",
	"textasciitilde": "~",
	"textbar":        "|",
	"textless":       "<",
	"textgreater":    ">",
	"textbullet":     "•",
	"textdagger":     "†",
	"textdaggerdbl":  "‡",
	"textparagraph":  "¶",
	"textsection":    "§",
	"textcopyright":  "©",
	"textregistered": "®",
	"texttrademark":  "™",
	"textdegree":     "°",
	"textellipsis":   "…",
	"texteuro":       "€",
	"pounds":         "£",
	"S":              "§",
	"P":              "¶",
	"dag":            "†",
	"ddag":           "‡",
	"copyright":      "©",

	// Special letters.
	"ss": "ß",
	"ae": "æ",
	"AE": "Æ",
	"oe": "œ",
	"OE": "Œ",
	"aa": "å",
	"AA": "Å",
	"o":  "ø",
	"O":  "Ø",
	"l":  "ł",
	"L":  "Ł",
	"i":  "ı",
	"j":  "ȷ",

	// Spacing.
	"quad":    " ",
	"qquad":   "  ",
	"enspace": " ",
	"thinspace": " ",
	",": " ",
	";": " ",
	"!": "",
}

// diacritics maps one-argument accent commands to combining marks.
var diacritics = map[string]rune{
	"`":  '̀', // grave
	"'":  '́', // acute
	"^":  '̂', // circumflex
	"~":  '̃', // tilde
	"=":  '̄', // macron
	"u":  '̆', // breve
	".":  '̇', // dot above
	"\"": '̈', // diaeresis
	"r":  '̊', // ring above
	"H":  '̋', // double acute
	"v":  '̌', // caron
	"c":  '̧', // cedilla
	"k":  '̨', // ogonek
	"d":  '̣', // dot below
	"b":  '̱', // macron below
}

// doubleDiacritics maps two-argument accent commands to combining
// double marks.
var doubleDiacritics = map[string]rune{
	"t": '͡', // double inverted breve (tie)
}

// ligatures is the character-level replacement table, ordered so that
// longer keys take priority.
var ligatures = []struct{ from, to string }{
	{"---", "—"},
	{"--", "–"},
	{"``", "“"},
	{"''", "”"},
	{"?`", "¿"},
	{"!`", "¡"},
	{"`", "‘"},
	{"'", "’"},
}
