package compress

// LZ77Encoder encodes data using LZ77 compression with DEFLATE constraints.
type LZ77Encoder struct {
	window *SlidingWindow
}

// NewLZ77Encoder creates a new LZ77 encoder with a 32KB sliding window.
func NewLZ77Encoder() *LZ77Encoder {
	return &LZ77Encoder{
		window: NewSlidingWindow(maxDistance),
	}
}

// Encode processes the input data and returns a sequence of tokens.
// Tokens are either literals or matches (back-references).
//
// Each DEFLATE stream starts with an empty history window. The encoder is
// reused across calls, so the sliding window is reset first to avoid
// producing matches that reference bytes from a previous, unrelated call.
func (enc *LZ77Encoder) Encode(data []byte) []Token {
	enc.window.Reset()
	return enc.encodeTokens(data)
}

// EncodeWithDict processes data the same way Encode does, but primes the
// sliding window with dict first so matches can reach back into it without
// dict itself ever being tokenized or emitted. This is how group i's
// compressor sees group i-1's tail without re-encoding it, the preset
// dictionary mtpng's parallel pipeline depends on.
func (enc *LZ77Encoder) EncodeWithDict(dict []byte, data []byte) []Token {
	enc.window.Seed(dict)
	return enc.encodeTokens(data)
}

func (enc *LZ77Encoder) encodeTokens(data []byte) []Token {
	if len(data) == 0 {
		return nil
	}

	var tokens []Token
	pos := 0

	for pos < len(data) {
		remaining := data[pos:]
		match, found := FindMatch(enc.window, data, pos)

		if found && match.Length <= uint16(len(remaining)) {
			tokens = append(tokens, TokenMatch(match.Distance, match.Length))
			for i := 0; i < int(match.Length); i++ {
				enc.window.Write(data[pos+i])
			}
			pos += int(match.Length)
		} else {
			tokens = append(tokens, TokenLiteral(data[pos]))
			enc.window.Write(data[pos])
			pos++
		}
	}

	return tokens
}
