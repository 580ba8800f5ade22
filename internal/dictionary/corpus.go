package dictionary

import "strconv"

var topWords = []string{
	"the", "of", "and", "to", "in", "is", "it", "you", "that", "he",
	"was", "for", "on", "are", "with", "as", "his", "they", "be", "at",
	"one", "have", "this", "from", "or", "had", "by", "not", "word", "but",
	"what", "some", "we", "can", "out", "other", "were", "all", "there", "when",
	"up", "use", "your", "how", "said", "an", "each", "she", "which", "do",
	"their", "time", "if", "will", "way", "about", "many", "then", "them", "write",
	"would", "like", "so", "these", "her", "long", "make", "thing", "see", "him",
	"two", "has", "look", "more", "day", "could", "go", "come", "did", "number",
	"sound", "no", "most", "people", "my", "over", "know", "water", "than", "call",
	"first", "who", "may", "down", "side", "been", "now", "find", "any", "new",
	"work", "part", "take", "get", "place", "made", "live", "where", "after", "back",
	"little", "only", "round", "man", "year", "came", "show", "every", "good", "me",
	"give", "our", "under", "name", "very", "through", "just", "form", "much", "great",
	"think", "say", "help", "low", "line", "before", "turn", "cause", "same", "mean",
	"differ", "move", "right", "boy", "old", "too", "does", "tell", "sentence", "set",
	"three", "want", "air", "well", "also", "play", "small", "end", "put", "home",
	"read", "hand", "port", "large", "spell", "add", "even", "land", "here", "must",
	"big", "high", "such", "follow", "act", "why", "ask", "men", "change", "went",
	"light", "kind", "off", "need", "house", "picture", "try", "us", "again", "animal",
	"point", "mother", "world", "near", "build", "self", "earth", "father", "head", "stand",
	"own", "page", "should", "country", "found", "answer", "school", "grow", "study", "still",
	"learn", "plant", "cover", "food", "sun", "four", "thought", "let", "keep", "eye",
	"never", "last", "door", "between", "city", "tree", "cross", "since", "hard", "start",
	"might", "story", "saw", "far", "sea", "draw", "left", "late", "run", "while",
	"press", "close", "night", "real", "life", "few", "stop", "open", "seem", "together",
	"next", "white", "children", "begin", "got", "walk", "example", "ease", "paper", "often",
	"always", "music", "those", "both", "mark", "book", "letter", "until", "mile", "river",
	"car", "feet", "care", "second", "group", "carry", "took", "rain", "eat", "room",
	"friend", "began", "idea", "fish", "mountain", "north", "once", "base", "hear", "horse",
	"cut", "sure", "watch", "color", "face", "wood", "main", "enough", "plain", "girl",
	"usual", "young", "ready", "above", "ever", "red", "list", "though", "feel", "talk",
	"bird", "soon", "body", "dog", "family", "direct", "pose", "leave", "song", "measure",
	"state", "product", "black", "short", "numeral", "class", "wind", "question", "happen", "complete",
	"ship", "area", "half", "rock", "order", "fire", "south", "problem", "piece", "told",
	"knew", "pass", "farm", "top", "whole", "king", "size", "heard", "best", "hour",
	"better", "true", "during", "hundred", "am", "remember", "step", "early", "hold", "west",
	"ground", "interest", "reach", "fast", "five", "sing", "listen", "six", "table", "travel",
	"less", "morning", "ten", "simple", "several", "vowel", "toward", "war", "lay", "against",
	"pattern", "slow", "center", "love", "person", "money", "serve", "appear", "road", "map",
	"science", "rule", "govern", "pull", "cold", "notice", "voice", "fall", "power", "town",
	"fine", "certain", "fly", "unit", "lead", "cry", "dark", "machine", "note", "wait",
	"plan", "figure", "star", "box", "noun", "field", "rest", "correct", "able", "pound",
	"done", "beauty", "drive", "stood", "contain", "front", "teach", "week", "final", "gave",
	"green", "oh", "quick", "develop", "sleep", "warm", "free", "minute", "strong", "special",
	"mind", "behind", "clear", "tail", "produce", "fact", "street", "inch", "lot", "nothing",
	"course", "stay", "wheel", "full", "force", "blue", "object", "decide", "surface", "deep",
	"moon", "island", "foot", "yet", "busy", "test", "record", "boat", "common", "gold",
	"possible", "plane", "age", "dry", "wonder", "laugh", "thousand", "ago", "ran", "check",
	"game", "shape", "yes", "hot", "miss", "brought", "heat", "snow", "bed", "bring",
	"sit", "perhaps", "fill", "east", "weight", "language", "among", "cat", "radio", "antenna",
}

var abbreviations = []string{
	"cq", "de", "k", "kn", "sk", "ar", "bk", "es", "fb", "ur",
	"rst", "tnx", "tu", "73", "88", "om", "yl", "xyl", "gm", "ga",
	"ge", "gn", "hr", "hw", "pse", "rig", "ant", "wx", "agn", "cul",
	"dr", "hi", "nr", "op", "pwr", "rcvd", "sri", "vy", "wkd", "abt",
	"cfm", "cpy", "dx", "fer", "fm", "gud", "lid", "msg", "nil", "ok",
	"pls", "rpt", "sig", "stn", "tks", "wid", "wpm", "yr", "5nn", "bcnu",
}

var qCodes = []string{
	"qrl", "qrm", "qrn", "qro", "qrp", "qrq", "qrs", "qrt", "qru", "qrv",
	"qrx", "qrz", "qsb", "qsl", "qso", "qsy", "qth", "qtr", "qsk", "qst",
}

var usNames = []string{
	"james", "mary", "john", "patricia", "robert", "jennifer", "michael", "linda", "william", "elizabeth",
	"david", "barbara", "richard", "susan", "joseph", "jessica", "thomas", "sarah", "charles", "karen",
	"chris", "nancy", "daniel", "lisa", "matthew", "betty", "anthony", "margaret", "mark", "sandra",
	"paul", "ashley", "steven", "kim", "andrew", "emily", "kenneth", "donna", "joshua", "michelle",
	"kevin", "dorothy", "brian", "carol", "george", "amanda", "edward", "melissa", "ron", "deborah",
}

var usStates = []string{
	"al", "ak", "az", "ar", "ca", "co", "ct", "de", "fl", "ga",
	"hi", "id", "il", "in", "ia", "ks", "ky", "la", "me", "md",
	"ma", "mi", "mn", "ms", "mo", "mt", "ne", "nv", "nh", "nj",
	"nm", "ny", "nc", "nd", "oh", "ok", "or", "pa", "ri", "sc",
	"sd", "tn", "tx", "ut", "vt", "va", "wa", "wv", "wi", "wy",
}

var countries = []string{
	"usa", "canada", "mexico", "brazil", "argentina", "chile", "peru", "uk", "ireland", "france",
	"spain", "portugal", "italy", "germany", "austria", "poland", "sweden", "norway", "finland", "denmark",
	"japan", "china", "korea", "india", "russia", "ukraine", "greece", "turkey", "egypt", "kenya",
	"nigeria", "morocco", "israel", "iran", "iraq", "cuba", "panama", "fiji", "nepal", "iceland",
	"belgium", "holland", "swiss", "czech", "hungary", "romania", "serbia", "croatia", "australia", "zealand",
}

// DefaultEntries returns the built-in corpus. Numbers and years are generated;
// every other category keeps the order of its list as its rank.
func DefaultEntries() []Entry {
	return EntriesWithWords(topWords)
}

// EntriesWithWords returns the built-in corpus with words replacing the Word list.
func EntriesWithWords(words []string) []Entry {
	var entries []Entry
	entries = appendList(entries, Word, words)
	entries = appendList(entries, Abbreviation, abbreviations)
	entries = appendList(entries, QCode, qCodes)
	entries = appendList(entries, USName, usNames)
	entries = appendList(entries, USStateAbbreviation, usStates)
	entries = appendList(entries, Country, countries)
	for n := 0; n < 100; n++ {
		entries = append(entries, Entry{Word: strconv.Itoa(n), Type: Number, Rank: n})
	}
	for i, y := 0, 2025; y >= 1900; i, y = i+1, y-1 {
		entries = append(entries, Entry{Word: strconv.Itoa(y), Type: Year, Rank: i})
	}
	return entries
}

func appendList(entries []Entry, typ EntryType, words []string) []Entry {
	for i, w := range words {
		entries = append(entries, Entry{Word: w, Type: typ, Rank: i})
	}
	return entries
}
