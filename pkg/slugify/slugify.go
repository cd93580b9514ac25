// Package slugify kart adreslerinde kullanılan URL-güvenli slug üretimini içerir.
package slugify

import (
	"strconv"
	"strings"
)

// FallbackSlug normalizasyon sonucu boş kalan adaylar için sabit değer.
const FallbackSlug = "user"

// Normalize adayı URL-güvenli bir slug'a çevirir: küçük harf, [a-z0-9-]
// dışındaki her karakter dizisi tek tire, baştaki/sondaki tireler atılır.
// Sonuç boşsa FallbackSlug döner; asla boş string dönmez.
func Normalize(candidate string) string {
	lower := strings.ToLower(strings.TrimSpace(candidate))

	var b strings.Builder
	b.Grow(len(lower))
	lastHyphen := false
	for _, r := range lower {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		switch {
		case valid:
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			// Geçersiz karakter dizisi tek tireye iner ('-' dahil).
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return FallbackSlug
	}
	return slug
}

// WithSuffix slug'a artan sayısal son ek ekler (örn: "jordan-lee-1").
func WithSuffix(slug string, n int) string {
	return slug + "-" + strconv.Itoa(n)
}
