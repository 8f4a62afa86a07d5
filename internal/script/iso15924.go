package script

// iso15924 maps ISO 15924 codes to unicode.Scripts keys.
var iso15924 = map[string]string{
	"Adlm": "Adlam",
	"Arab": "Arabic",
	"Armn": "Armenian",
	"Bali": "Balinese",
	"Bamu": "Bamum",
	"Beng": "Bengali",
	"Bopo": "Bopomofo",
	"Brai": "Braille",
	"Bugi": "Buginese",
	"Cakm": "Chakma",
	"Cans": "Canadian_Aboriginal",
	"Cham": "Cham",
	"Cher": "Cherokee",
	"Copt": "Coptic",
	"Cyrl": "Cyrillic",
	"Deva": "Devanagari",
	"Dsrt": "Deseret",
	"Egyp": "Egyptian_Hieroglyphs",
	"Ethi": "Ethiopic",
	"Geor": "Georgian",
	"Glag": "Glagolitic",
	"Goth": "Gothic",
	"Grek": "Greek",
	"Gujr": "Gujarati",
	"Guru": "Gurmukhi",
	"Hang": "Hangul",
	"Hani": "Han",
	"Hebr": "Hebrew",
	"Hira": "Hiragana",
	"Hmng": "Pahawh_Hmong",
	"Hmnp": "Nyiakeng_Puachue_Hmong",
	"Java": "Javanese",
	"Kana": "Katakana",
	"Khmr": "Khmer",
	"Knda": "Kannada",
	"Lana": "Tai_Tham",
	"Laoo": "Lao",
	"Latn": "Latin",
	"Limb": "Limbu",
	"Linb": "Linear_B",
	"Mlym": "Malayalam",
	"Mong": "Mongolian",
	"Mtei": "Meetei_Mayek",
	"Mymr": "Myanmar",
	"Nkoo": "Nko",
	"Ogam": "Ogham",
	"Olck": "Ol_Chiki",
	"Orya": "Oriya",
	"Osge": "Osage",
	"Phnx": "Phoenician",
	"Rohg": "Hanifi_Rohingya",
	"Runr": "Runic",
	"Samr": "Samaritan",
	"Sinh": "Sinhala",
	"Sund": "Sundanese",
	"Syrc": "Syriac",
	"Tale": "Tai_Le",
	"Taml": "Tamil",
	"Telu": "Telugu",
	"Tfng": "Tifinagh",
	"Tglg": "Tagalog",
	"Thaa": "Thaana",
	"Thai": "Thai",
	"Tibt": "Tibetan",
	"Vaii": "Vai",
	"Xsux": "Cuneiform",
	"Yiii": "Yi",
	"Zinh": "Inherited",
	"Zyyy": "Common",
}
