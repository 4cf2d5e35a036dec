package motion

import (
	"strconv"
	"strings"
)

// FormatInt renders n with a separator between each group of three digits.
func FormatInt(n int, sep string) string {
	digits := strconv.Itoa(n)
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	if len(digits) <= 3 || sep == "" {
		if neg {
			return "-" + digits
		}
		return digits
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 && !(neg && b.Len() == 1) {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPercent renders a value counted in tenths of a percent, so 874
// becomes "87.4%".
func FormatPercent(tenths int) string {
	sign := ""
	if tenths < 0 {
		sign = "-"
		tenths = -tenths
	}
	return sign + strconv.Itoa(tenths/10) + "." + strconv.Itoa(tenths%10) + "%"
}
