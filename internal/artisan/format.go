package artisan

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// digitsOnly strips every non-digit character.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhoneNumber groups a 10-digit number as "XX XX XX XX XX".
// Anything else is returned unchanged.
func FormatPhoneNumber(phone string) string {
	d := digitsOnly(phone)
	if len(d) != 10 {
		return phone
	}
	return strings.Join([]string{d[0:2], d[2:4], d[4:6], d[6:8], d[8:10]}, " ")
}

// WhatsAppLink builds a wa.me link, with a pre-filled message when msg is set.
func WhatsAppLink(phone, msg string) string {
	link := "https://wa.me/" + digitsOnly(phone)
	if msg == "" {
		return link
	}
	return link + "?text=" + encodeURIComponent(msg)
}

// CallLink builds a tel: link.
func CallLink(phone string) string {
	return "tel:" + digitsOnly(phone)
}

// encodeURIComponent escapes like the JavaScript function of the same name:
// spaces become %20 and the unreserved marks !'()* are kept.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	for _, r := range []string{"!", "'", "(", ")", "*"} {
		escaped = strings.ReplaceAll(escaped, url.QueryEscape(r), r)
	}
	return escaped
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatCommentDate renders t as a French long date with time,
// e.g. "18 octobre 2026 à 14:05". t is rendered in its own location.
func FormatCommentDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d à %02d:%02d",
		t.Day(), frenchMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
