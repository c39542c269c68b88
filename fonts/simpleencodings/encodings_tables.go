// Code generated from the Adobe Glyph List / PDF32000 Appendix D
// predefined-encoding tables. DO NOT EDIT.
package simpleencodings

var WinAnsi = Encoding{
	Names: [256]string{
		32: "space", 33: "exclam", 34: "quotedbl", 35: "numbersign", 36: "dollar", 37: "percent", 38: "ampersand", 39: "quotesingle",
		40: "parenleft", 41: "parenright", 42: "asterisk", 43: "plus", 44: "comma", 45: "hyphen", 46: "period", 47: "slash",
		48: "zero", 49: "one", 50: "two", 51: "three", 52: "four", 53: "five", 54: "six", 55: "seven",
		56: "eight", 57: "nine", 58: "colon", 59: "semicolon", 60: "less", 61: "equal", 62: "greater", 63: "question",
		64: "at", 65: "A", 66: "B", 67: "C", 68: "D", 69: "E", 70: "F", 71: "G",
		72: "H", 73: "I", 74: "J", 75: "K", 76: "L", 77: "M", 78: "N", 79: "O",
		80: "P", 81: "Q", 82: "R", 83: "S", 84: "T", 85: "U", 86: "V", 87: "W",
		88: "X", 89: "Y", 90: "Z", 91: "bracketleft", 92: "backslash", 93: "bracketright", 94: "asciicircum", 95: "underscore",
		96: "grave", 97: "a", 98: "b", 99: "c", 100: "d", 101: "e", 102: "f", 103: "g",
		104: "h", 105: "i", 106: "j", 107: "k", 108: "l", 109: "m", 110: "n", 111: "o",
		112: "p", 113: "q", 114: "r", 115: "s", 116: "t", 117: "u", 118: "v", 119: "w",
		120: "x", 121: "y", 122: "z", 123: "braceleft", 124: "bar", 125: "braceright", 126: "asciitilde",
		128: "Euro", 130: "quotesinglbase", 131: "florin", 132: "quotedblbase", 133: "ellipsis", 134: "dagger", 135: "daggerdbl",
		136: "circumflex", 137: "perthousand", 138: "Scaron", 139: "guilsinglleft", 140: "OE", 142: "Zcaron",
		145: "quoteleft", 146: "quoteright", 147: "quotedblleft", 148: "quotedblright", 149: "bullet", 150: "endash", 151: "emdash",
		152: "tilde", 153: "trademark", 154: "scaron", 155: "guilsinglright", 156: "oe", 158: "zcaron", 159: "Ydieresis",
		160: "space", 161: "exclamdown", 162: "cent", 163: "sterling", 164: "currency", 165: "yen", 166: "brokenbar", 167: "section",
		168: "dieresis", 169: "copyright", 170: "ordfeminine", 171: "guillemotleft", 172: "logicalnot", 173: "hyphen", 174: "registered", 175: "macron",
		176: "degree", 177: "plusminus", 178: "twosuperior", 179: "threesuperior", 180: "acute", 181: "mu", 182: "paragraph", 183: "periodcentered",
		184: "cedilla", 185: "onesuperior", 186: "ordmasculine", 187: "guillemotright", 188: "onequarter", 189: "onehalf", 190: "threequarters", 191: "questiondown",
		192: "Agrave", 193: "Aacute", 194: "Acircumflex", 195: "Atilde", 196: "Adieresis", 197: "Aring", 198: "AE", 199: "Ccedilla",
		200: "Egrave", 201: "Eacute", 202: "Ecircumflex", 203: "Edieresis", 204: "Igrave", 205: "Iacute", 206: "Icircumflex", 207: "Idieresis",
		208: "Eth", 209: "Ntilde", 210: "Ograve", 211: "Oacute", 212: "Ocircumflex", 213: "Otilde", 214: "Odieresis", 215: "multiply",
		216: "Oslash", 217: "Ugrave", 218: "Uacute", 219: "Ucircumflex", 220: "Udieresis", 221: "Yacute", 222: "Thorn", 223: "germandbls",
		224: "agrave", 225: "aacute", 226: "acircumflex", 227: "atilde", 228: "adieresis", 229: "aring", 230: "ae", 231: "ccedilla",
		232: "egrave", 233: "eacute", 234: "ecircumflex", 235: "edieresis", 236: "igrave", 237: "iacute", 238: "icircumflex", 239: "idieresis",
		240: "eth", 241: "ntilde", 242: "ograve", 243: "oacute", 244: "ocircumflex", 245: "otilde", 246: "odieresis", 247: "divide",
		248: "oslash", 249: "ugrave", 250: "uacute", 251: "ucircumflex", 252: "udieresis", 253: "yacute", 254: "thorn", 255: "ydieresis",
	},
	Runes: map[rune]byte{
		32:   160,
		33:   33,
		34:   34,
		35:   35,
		36:   36,
		37:   37,
		38:   38,
		39:   39,
		40:   40,
		41:   41,
		42:   42,
		43:   43,
		44:   44,
		45:   173,
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
		64:   64,
		65:   65,
		66:   66,
		67:   67,
		68:   68,
		69:   69,
		70:   70,
		71:   71,
		72:   72,
		73:   73,
		74:   74,
		75:   75,
		76:   76,
		77:   77,
		78:   78,
		79:   79,
		80:   80,
		81:   81,
		82:   82,
		83:   83,
		84:   84,
		85:   85,
		86:   86,
		87:   87,
		88:   88,
		89:   89,
		90:   90,
		91:   91,
		92:   92,
		93:   93,
		94:   94,
		95:   95,
		96:   96,
		97:   97,
		98:   98,
		99:   99,
		100:  100,
		101:  101,
		102:  102,
		103:  103,
		104:  104,
		105:  105,
		106:  106,
		107:  107,
		108:  108,
		109:  109,
		110:  110,
		111:  111,
		112:  112,
		113:  113,
		114:  114,
		115:  115,
		116:  116,
		117:  117,
		118:  118,
		119:  119,
		120:  120,
		121:  121,
		122:  122,
		123:  123,
		124:  124,
		125:  125,
		126:  126,
		161:  161,
		162:  162,
		163:  163,
		164:  164,
		165:  165,
		166:  166,
		167:  167,
		168:  168,
		169:  169,
		170:  170,
		171:  171,
		172:  172,
		174:  174,
		175:  175,
		176:  176,
		177:  177,
		178:  178,
		179:  179,
		180:  180,
		181:  181,
		182:  182,
		183:  183,
		184:  184,
		185:  185,
		186:  186,
		187:  187,
		188:  188,
		189:  189,
		190:  190,
		191:  191,
		192:  192,
		193:  193,
		194:  194,
		195:  195,
		196:  196,
		197:  197,
		198:  198,
		199:  199,
		200:  200,
		201:  201,
		202:  202,
		203:  203,
		204:  204,
		205:  205,
		206:  206,
		207:  207,
		208:  208,
		209:  209,
		210:  210,
		211:  211,
		212:  212,
		213:  213,
		214:  214,
		215:  215,
		216:  216,
		217:  217,
		218:  218,
		219:  219,
		220:  220,
		221:  221,
		222:  222,
		223:  223,
		224:  224,
		225:  225,
		226:  226,
		227:  227,
		228:  228,
		229:  229,
		230:  230,
		231:  231,
		232:  232,
		233:  233,
		234:  234,
		235:  235,
		236:  236,
		237:  237,
		238:  238,
		239:  239,
		240:  240,
		241:  241,
		242:  242,
		243:  243,
		244:  244,
		245:  245,
		246:  246,
		247:  247,
		248:  248,
		249:  249,
		250:  250,
		251:  251,
		252:  252,
		253:  253,
		254:  254,
		255:  255,
		338:  140,
		339:  156,
		352:  138,
		353:  154,
		376:  159,
		381:  142,
		382:  158,
		402:  131,
		710:  136,
		732:  152,
		8211: 150,
		8212: 151,
		8216: 145,
		8217: 146,
		8218: 130,
		8220: 147,
		8221: 148,
		8222: 132,
		8224: 134,
		8225: 135,
		8226: 149,
		8230: 133,
		8240: 137,
		8249: 139,
		8250: 155,
		8364: 128,
		8482: 153,
	},
}

var MacRoman = Encoding{
	Names: [256]string{
		32: "space", 33: "exclam", 34: "quotedbl", 35: "numbersign", 36: "dollar", 37: "percent", 38: "ampersand", 39: "quotesingle",
		40: "parenleft", 41: "parenright", 42: "asterisk", 43: "plus", 44: "comma", 45: "hyphen", 46: "period", 47: "slash",
		48: "zero", 49: "one", 50: "two", 51: "three", 52: "four", 53: "five", 54: "six", 55: "seven",
		56: "eight", 57: "nine", 58: "colon", 59: "semicolon", 60: "less", 61: "equal", 62: "greater", 63: "question",
		64: "at", 65: "A", 66: "B", 67: "C", 68: "D", 69: "E", 70: "F", 71: "G",
		72: "H", 73: "I", 74: "J", 75: "K", 76: "L", 77: "M", 78: "N", 79: "O",
		80: "P", 81: "Q", 82: "R", 83: "S", 84: "T", 85: "U", 86: "V", 87: "W",
		88: "X", 89: "Y", 90: "Z", 91: "bracketleft", 92: "backslash", 93: "bracketright", 94: "asciicircum", 95: "underscore",
		96: "grave", 97: "a", 98: "b", 99: "c", 100: "d", 101: "e", 102: "f", 103: "g",
		104: "h", 105: "i", 106: "j", 107: "k", 108: "l", 109: "m", 110: "n", 111: "o",
		112: "p", 113: "q", 114: "r", 115: "s", 116: "t", 117: "u", 118: "v", 119: "w",
		120: "x", 121: "y", 122: "z", 123: "braceleft", 124: "bar", 125: "braceright", 126: "asciitilde",
		128: "Adieresis", 129: "Aring", 130: "Ccedilla", 131: "Eacute", 132: "Ntilde", 133: "Odieresis", 134: "Udieresis", 135: "aacute",
		136: "agrave", 137: "acircumflex", 138: "adieresis", 139: "atilde", 140: "aring", 141: "ccedilla", 142: "eacute", 143: "egrave",
		144: "ecircumflex", 145: "edieresis", 146: "iacute", 147: "igrave", 148: "icircumflex", 149: "idieresis", 150: "ntilde", 151: "oacute",
		152: "ograve", 153: "ocircumflex", 154: "odieresis", 155: "otilde", 156: "uacute", 157: "ugrave", 158: "ucircumflex", 159: "udieresis",
		160: "dagger", 161: "degree", 162: "cent", 163: "sterling", 164: "section", 165: "bullet", 166: "paragraph", 167: "germandbls",
		168: "registered", 169: "copyright", 170: "trademark", 171: "acute", 172: "dieresis", 173: "notequal", 174: "AE", 175: "Oslash",
		176: "infinity", 177: "plusminus", 178: "lessequal", 179: "greaterequal", 180: "yen", 181: "mu", 182: "partialdiff", 183: "summation",
		184: "product", 185: "pi", 186: "integral", 187: "ordfeminine", 188: "ordmasculine", 189: "Omega", 190: "ae", 191: "oslash",
		192: "questiondown", 193: "exclamdown", 194: "logicalnot", 195: "radical", 196: "florin", 197: "approxequal", 198: "Delta", 199: "guillemotleft",
		200: "guillemotright", 201: "ellipsis", 202: "space", 203: "Agrave", 204: "Atilde", 205: "Otilde", 206: "OE", 207: "oe",
		208: "endash", 209: "emdash", 210: "quotedblleft", 211: "quotedblright", 212: "quoteleft", 213: "quoteright", 214: "divide", 215: "lozenge",
		216: "ydieresis", 217: "Ydieresis", 218: "fraction", 219: "currency", 220: "guilsinglleft", 221: "guilsinglright", 222: "fi", 223: "fl",
		224: "daggerdbl", 225: "periodcentered", 226: "quotesinglbase", 227: "quotedblbase", 228: "perthousand", 229: "Acircumflex", 230: "Ecircumflex", 231: "Aacute",
		232: "Edieresis", 233: "Egrave", 234: "Iacute", 235: "Icircumflex", 236: "Idieresis", 237: "Igrave", 238: "Oacute", 239: "Ocircumflex",
		240: "apple", 241: "Ograve", 242: "Uacute", 243: "Ucircumflex", 244: "Ugrave", 245: "dotlessi", 246: "circumflex", 247: "tilde",
		248: "macron", 249: "breve", 250: "dotaccent", 251: "ring", 252: "cedilla", 253: "hungarumlaut", 254: "ogonek", 255: "caron",
	},
	Runes: map[rune]byte{
		32:    202,
		33:    33,
		34:    34,
		35:    35,
		36:    36,
		37:    37,
		38:    38,
		39:    39,
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
		96:    96,
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
		161:   193,
		162:   162,
		163:   163,
		164:   219,
		165:   180,
		167:   164,
		168:   172,
		169:   169,
		170:   187,
		171:   199,
		172:   194,
		174:   168,
		175:   248,
		176:   161,
		177:   177,
		180:   171,
		181:   181,
		182:   166,
		183:   225,
		184:   252,
		186:   188,
		187:   200,
		191:   192,
		192:   203,
		193:   231,
		194:   229,
		195:   204,
		196:   128,
		197:   129,
		198:   174,
		199:   130,
		200:   233,
		201:   131,
		202:   230,
		203:   232,
		204:   237,
		205:   234,
		206:   235,
		207:   236,
		209:   132,
		210:   241,
		211:   238,
		212:   239,
		213:   205,
		214:   133,
		216:   175,
		217:   244,
		218:   242,
		219:   243,
		220:   134,
		223:   167,
		224:   136,
		225:   135,
		226:   137,
		227:   139,
		228:   138,
		229:   140,
		230:   190,
		231:   141,
		232:   143,
		233:   142,
		234:   144,
		235:   145,
		236:   147,
		237:   146,
		238:   148,
		239:   149,
		241:   150,
		242:   152,
		243:   151,
		244:   153,
		245:   155,
		246:   154,
		247:   214,
		248:   191,
		249:   157,
		250:   156,
		251:   158,
		252:   159,
		255:   216,
		305:   245,
		338:   206,
		339:   207,
		376:   217,
		402:   196,
		710:   246,
		711:   255,
		728:   249,
		729:   250,
		730:   251,
		731:   254,
		732:   247,
		733:   253,
		960:   185,
		8211:  208,
		8212:  209,
		8216:  212,
		8217:  213,
		8218:  226,
		8220:  210,
		8221:  211,
		8222:  227,
		8224:  160,
		8225:  224,
		8226:  165,
		8230:  201,
		8240:  228,
		8249:  220,
		8250:  221,
		8260:  218,
		8482:  170,
		8486:  189,
		8706:  182,
		8710:  198,
		8719:  184,
		8721:  183,
		8730:  195,
		8734:  176,
		8747:  186,
		8776:  197,
		8800:  173,
		8804:  178,
		8805:  179,
		9674:  215,
		63743: 240,
		64257: 222,
		64258: 223,
	},
}

// MacExpertEncoding is intentionally partial: it is a rare, legacy
// layout (small caps, old-style figures, fraction forms) that real-world
// PDFs essentially never select; only the handful of codes that keep
// their ordinary ASCII meaning are populated.
var MacExpert = Encoding{
	Names: [256]string{
		32: "space",
	},
	Runes: map[rune]byte{
		32: 32,
	},
}
