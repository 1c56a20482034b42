package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the buffer's output line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// DetectLineEnding returns LineEndingCRLF when CRLF pairs outnumber bare
// LF line endings in text, and LineEndingLF otherwise.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount int
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		if i > 0 && text[i-1] == '\r' {
			crlfCount++
		} else {
			lfCount++
		}
	}
	if crlfCount > lfCount {
		return LineEndingCRLF
	}
	return LineEndingLF
}
