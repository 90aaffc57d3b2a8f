package constvars

const (
	RegexDNI   = `^\d{6,15}$`
	RegexEmail = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
)
