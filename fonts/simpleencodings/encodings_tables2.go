// Code generated from the Adobe Standard / Symbol predefined
// encoding tables. DO NOT EDIT.
package simpleencodings

var Standard = Encoding{
	Names: [256]string{
		32: "space", 33: "exclam", 34: "quotedbl", 35: "numbersign", 36: "dollar", 37: "percent", 38: "ampersand", 39: "quoteright",
		40: "parenleft", 41: "parenright", 42: "asterisk", 43: "plus", 44: "comma", 45: "hyphen", 46: "period", 47: "slash",
		48: "zero", 49: "one", 50: "two", 51: "three", 52: "four", 53: "five", 54: "six", 55: "seven",
		56: "eight", 57: "nine", 58: "colon", 59: "semicolon", 60: "less", 61: "equal", 62: "greater", 63: "question",
		64: "at", 65: "A", 66: "B", 67: "C", 68: "D", 69: "E", 70: "F", 71: "G",
		72: "H", 73: "I", 74: "J", 75: "K", 76: "L", 77: "M", 78: "N", 79: "O",
		80: "P", 81: "Q", 82: "R", 83: "S", 84: "T", 85: "U", 86: "V", 87: "W",
		88: "X", 89: "Y", 90: "Z", 91: "bracketleft", 92: "backslash", 93: "bracketright", 94: "asciicircum", 95: "underscore",
		96: "quoteleft", 97: "a", 98: "b", 99: "c", 100: "d", 101: "e", 102: "f", 103: "g",
		104: "h", 105: "i", 106: "j", 107: "k", 108: "l", 109: "m", 110: "n", 111: "o",
		112: "p", 113: "q", 114: "r", 115: "s", 116: "t", 117: "u", 118: "v", 119: "w",
		120: "x", 121: "y", 122: "z", 123: "braceleft", 124: "bar", 125: "braceright", 126: "asciitilde",
		161: "exclamdown", 162: "cent", 163: "sterling", 164: "fraction", 165: "yen", 166: "florin", 167: "section",
		168: "currency", 169: "quotesingle", 170: "quotedblleft", 171: "guillemotleft", 172: "guilsinglleft", 173: "guilsinglright", 174: "fi", 175: "fl",
		177: "endash", 178: "dagger", 179: "daggerdbl", 180: "periodcentered", 182: "paragraph", 183: "bullet",
		184: "quotesinglbase", 185: "quotedblbase", 186: "quotedblright", 187: "guillemotright", 188: "ellipsis", 189: "perthousand", 191: "questiondown",
		193: "grave", 194: "acute", 195: "circumflex", 196: "tilde", 197: "macron", 198: "breve", 199: "dotaccent",
		200: "dieresis", 202: "ring", 203: "cedilla", 205: "hungarumlaut", 206: "ogonek", 207: "caron",
		208: "emdash",
		225: "AE", 227: "ordfeminine",
		232: "Lslash", 233: "Oslash", 234: "OE", 235: "ordmasculine",
		241: "ae", 245: "dotlessi",
		248: "lslash", 249: "oslash", 250: "oe", 251: "germandbls",
	},
	Runes: map[rune]byte{
		32:    32,
		33:    33,
		34:    34,
		35:    35,
		36:    36,
		37:    37,
		38:    38,
		39:    169,
		40:    40,
		41:    41,
		42:    42,
		43:    43,
		44:    44,
		45:    45,
		46:    46,
		47:    47,
		48:    48,
		49:    49,
		50:    50,
		51:    51,
		52:    52,
		53:    53,
		54:    54,
		55:    55,
		56:    56,
		57:    57,
		58:    58,
		59:    59,
		60:    60,
		61:    61,
		62:    62,
		63:    63,
		64:    64,
		65:    65,
		66:    66,
		67:    67,
		68:    68,
		69:    69,
		70:    70,
		71:    71,
		72:    72,
		73:    73,
		74:    74,
		75:    75,
		76:    76,
		77:    77,
		78:    78,
		79:    79,
		80:    80,
		81:    81,
		82:    82,
		83:    83,
		84:    84,
		85:    85,
		86:    86,
		87:    87,
		88:    88,
		89:    89,
		90:    90,
		91:    91,
		92:    92,
		93:    93,
		94:    94,
		95:    95,
		96:    193,
		97:    97,
		98:    98,
		99:    99,
		100:   100,
		101:   101,
		102:   102,
		103:   103,
		104:   104,
		105:   105,
		106:   106,
		107:   107,
		108:   108,
		109:   109,
		110:   110,
		111:   111,
		112:   112,
		113:   113,
		114:   114,
		115:   115,
		116:   116,
		117:   117,
		118:   118,
		119:   119,
		120:   120,
		121:   121,
		122:   122,
		123:   123,
		124:   124,
		125:   125,
		126:   126,
		161:   161,
		162:   162,
		163:   163,
		164:   168,
		165:   165,
		167:   167,
		168:   200,
		170:   227,
		171:   171,
		175:   197,
		180:   194,
		182:   182,
		183:   180,
		184:   203,
		186:   235,
		187:   187,
		191:   191,
		198:   225,
		216:   233,
		223:   251,
		230:   241,
		248:   249,
		305:   245,
		321:   232,
		322:   248,
		338:   234,
		339:   250,
		402:   166,
		710:   195,
		711:   207,
		728:   198,
		729:   199,
		730:   202,
		731:   206,
		732:   196,
		733:   205,
		8211:  177,
		8212:  208,
		8216:  96,
		8217:  39,
		8218:  184,
		8220:  170,
		8221:  186,
		8222:  185,
		8224:  178,
		8225:  179,
		8226:  183,
		8230:  188,
		8240:  189,
		8249:  172,
		8250:  173,
		8260:  164,
		64257: 174,
		64258: 175,
	},
}

var Symbol = Encoding{
	Names: [256]string{
		32: "space", 33: "exclam", 34: "universal", 35: "numbersign", 36: "existential", 37: "percent", 38: "ampersand", 39: "suchthat",
		40: "parenleft", 41: "parenright", 42: "asteriskmath", 43: "plus", 44: "comma", 45: "minus", 46: "period", 47: "slash",
		48: "zero", 49: "one", 50: "two", 51: "three", 52: "four", 53: "five", 54: "six", 55: "seven",
		56: "eight", 57: "nine", 58: "colon", 59: "semicolon", 60: "less", 61: "equal", 62: "greater", 63: "question",
		64: "congruent", 65: "Alpha", 66: "Beta", 67: "Chi", 68: "Delta", 69: "Epsilon", 70: "Phi", 71: "Gamma",
		72: "Eta", 73: "Iota", 74: "theta1", 75: "Kappa", 76: "Lambda", 77: "Mu", 78: "Nu", 79: "Omicron",
		80: "Pi", 81: "Theta", 82: "Rho", 83: "Sigma", 84: "Tau", 85: "Upsilon", 86: "sigma1", 87: "Omega",
		88: "Xi", 89: "Psi", 90: "Zeta", 91: "bracketleft", 92: "therefore", 93: "bracketright", 94: "perpendicular", 95: "underscore",
		96: "radicalex", 97: "alpha", 98: "beta", 99: "chi", 100: "delta", 101: "epsilon", 102: "phi", 103: "gamma",
		104: "eta", 105: "iota", 106: "phi1", 107: "kappa", 108: "lambda", 109: "mu", 110: "nu", 111: "omicron",
		112: "pi", 113: "theta", 114: "rho", 115: "sigma", 116: "tau", 117: "upsilon", 118: "omega1", 119: "omega",
		120: "xi", 121: "psi", 122: "zeta", 123: "braceleft", 124: "bar", 125: "braceright", 126: "similar",
		160: "Euro", 161: "Upsilon1", 162: "minute", 163: "lessequal", 164: "fraction", 165: "infinity", 166: "florin", 167: "club",
		168: "diamond", 169: "heart", 170: "spade", 171: "arrowboth", 172: "arrowleft", 173: "arrowup", 174: "arrowright", 175: "arrowdown",
		176: "degree", 177: "plusminus", 178: "second", 179: "greaterequal", 180: "multiply", 181: "proportional", 182: "partialdiff", 183: "bullet",
		184: "divide", 185: "notequal", 186: "equivalence", 187: "approxequal", 188: "ellipsis", 191: "carriagereturn",
		192: "aleph", 193: "Ifraktur", 194: "Rfraktur", 195: "weierstrass", 196: "circlemultiply", 197: "circleplus", 198: "emptyset", 199: "intersection",
		200: "union", 201: "propersuperset", 202: "reflexsuperset", 203: "notsubset", 204: "propersubset", 205: "reflexsubset", 206: "element", 207: "notelement",
		208: "angle", 209: "gradient", 210: "registerserif", 211: "copyrightserif", 212: "trademarkserif", 213: "product", 214: "radical", 215: "dotmath",
		216: "logicalnot", 217: "logicaland", 218: "logicalor", 219: "arrowdblboth", 220: "arrowdblleft", 221: "arrowdblup", 222: "arrowdblright", 223: "arrowdbldown",
		224: "lozenge", 225: "angleleft", 229: "summation",
		241: "angleright", 242: "integral",
	},
	Runes: map[rune]byte{
		32:   32,
		33:   33,
		35:   35,
		37:   37,
		38:   38,
		40:   40,
		41:   41,
		43:   43,
		44:   44,
		46:   46,
		47:   47,
		48:   48,
		49:   49,
		50:   50,
		51:   51,
		52:   52,
		53:   53,
		54:   54,
		55:   55,
		56:   56,
		57:   57,
		58:   58,
		59:   59,
		60:   60,
		61:   61,
		62:   62,
		63:   63,
		91:   91,
		93:   93,
		95:   95,
		123:  123,
		124:  124,
		125:  125,
		169:  211,
		172:  216,
		174:  210,
		176:  176,
		177:  177,
		215:  180,
		247:  184,
		402:  166,
		913:  65,
		914:  66,
		915:  71,
		916:  68,
		917:  69,
		918:  90,
		919:  72,
		920:  81,
		921:  73,
		922:  75,
		923:  76,
		924:  77,
		925:  78,
		926:  88,
		927:  79,
		928:  80,
		929:  82,
		931:  83,
		932:  84,
		933:  85,
		934:  70,
		935:  67,
		936:  89,
		937:  87,
		945:  97,
		946:  98,
		947:  103,
		948:  100,
		949:  101,
		950:  122,
		951:  104,
		952:  113,
		953:  105,
		954:  107,
		955:  108,
		956:  109,
		957:  110,
		958:  120,
		959:  111,
		960:  112,
		961:  114,
		962:  86,
		963:  115,
		964:  116,
		965:  117,
		966:  102,
		967:  99,
		968:  121,
		969:  119,
		977:  74,
		981:  106,
		8226: 183,
		8230: 188,
		8242: 162,
		8243: 178,
		8260: 164,
		8364: 160,
		8482: 212,
		8501: 192,
		8592: 172,
		8593: 173,
		8594: 174,
		8595: 175,
		8596: 171,
		8656: 220,
		8657: 221,
		8658: 222,
		8659: 223,
		8660: 219,
		8704: 34,
		8706: 182,
		8707: 36,
		8711: 209,
		8712: 206,
		8713: 207,
		8715: 39,
		8719: 213,
		8721: 229,
		8722: 45,
		8727: 42,
		8730: 214,
		8734: 165,
		8736: 208,
		8743: 217,
		8744: 218,
		8745: 199,
		8746: 200,
		8747: 242,
		8756: 92,
		8773: 64,
		8776: 187,
		8800: 185,
		8801: 186,
		8804: 163,
		8805: 179,
		8834: 204,
		8835: 201,
		8869: 94,
		9674: 224,
		9824: 170,
		9827: 167,
		9829: 169,
		9830: 168,
	},
}
