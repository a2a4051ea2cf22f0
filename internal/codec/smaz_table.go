package codec

// smazCodebook is the fixed 254-entry dictionary used by the "smaz"
// codec (spec.md 4.2): a table of common short English/ASCII
// substrings, ordered by descending usefulness, in the spirit of
// antirez/smaz's classical codebook. Index i in this table encodes as
// byte i (0-253); codes 254 and 255 are reserved as literal-run escapes
// (see smaz.go).
var smazCodebook = [254]string{
	" ", "the", "e", "t", "a", "of", "o", "and", "i", "n",
	"s", "e ", " t", "h", "r", "d", "l", "u", "c", "t ",
	"th", "c ", "s ", "m", " a", "erm", "f", " o", "y", "p",
	"an", "w", "o ", "g", " an", "ing", " th", "an ", " s", "nd",
	"re", " i", "ing ", "it ", "b", " co", "ng ", "of ", "e a", "he",
	"on ", "en", "v", "is ", "ouc", "is", "at", "or", "ar", "to",
	"ed ", "er", "ll", "in ", "the ", "ati", "on", "all", "k", "this",
	"that", "al", "ve", "ion", "ur", "d ", "  ", "ic", "ent", "res",
	"ly", "ers", "ct", "ro", "es", "us", "se", "as", "ss", "ne",
	"for", "i ", "were", "im", "ow", "ha", "ith", "le", "r ", "ter",
	"wh", "ch", "out", "te", "st", "un", "ac", "ith ", "om", "d t",
	"ol", "ad", "as ", "el", "id", "id ", "ers ", " i ", "was", "il",
	"ty", "ab", "y ", "  t", "ch ", "est", "ri", "ver", "ect", "ati ",
	"en ", "ain", "ati", "ay ", "ol ", "ce", "ms", "ha ", "ple", "um",
	"by", "aw", "ent ", "ap", "en t", "ure", "op", "f ", "vi", "ght",
	"ose", "ia", "ew", "old", "00", "\r\n", "ue", "ok", "pe", "ty ",
	"ut", "sh", "str", "0", "1", "2", "3", "4", "5", "6",
	"7", "8", "9", ".", ",", ":", ";", "!", "?", "'",
	"\"", "-", "_", "/", "\\", "(", ")", "[", "]", "{",
	"}", "=", "+", "*", "&", "%", "$", "#", "@", "~",
	"<", ">", "|", "^", "`", "\n", "\t", "error", "warning", "null",
	"true", "false", "undefined", "function", "return", "import", "export", "class", "public", "private",
	"static", "void", "int", "string", "bool", "char", "float", "double", "const", "var",
	"let", "if", "else", "for ", "while", "do", "switch", "case", "break", "continue",
	"go", "chan", "map", "struct", "interface", "package", "http", "200", "404", "500",
	"exit", "root@", "$ ", "# ",
}

// smazIndex maps codebook substrings back to their byte code for
// encoding. It is a plain lookup; Compress does the longest-match search
// by probing it from the longest entry length down. A substring listed
// twice maps to its last index.
var smazIndex map[string]byte

func init() {
	smazIndex = make(map[string]byte, len(smazCodebook))
	for i, s := range smazCodebook {
		smazIndex[s] = byte(i)
	}
}
