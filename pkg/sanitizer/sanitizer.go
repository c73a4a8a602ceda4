package sanitizer

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func SanitizeName(input string) string {
	return Pipeline{stripControl}.Apply(input)
}

func SanitizeService(input string) string {
	return Pipeline{stripControl}.Apply(input)
}

func SanitizeNotes(input string) string {
	return Pipeline{stripControl}.Apply(input)
}
