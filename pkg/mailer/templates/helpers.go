package templates

import (
	"strconv"
	"time"

	"github.com/oksasatya/promisor/config"
)

type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04") }
}

func WithVerifyURL(url string) Option { return func(d *EmailData) { d.VerifyURL = url } }

// WithExpiry records both the absolute expiry and the remaining window, e.g. "15 minutes".
func WithExpiry(at time.Time, window time.Duration) Option {
	return func(d *EmailData) {
		utc := at.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04")
		d.ExpiresIn = humanizeMinutes(window)
	}
}

func humanizeMinutes(d time.Duration) string {
	m := int(d.Round(time.Minute) / time.Minute)
	if m == 1 {
		return "1 minute"
	}
	return strconv.Itoa(m) + " minutes"
}

// NewBaseEmailData fills the common fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:  name,
		Email: email,
		Type:  typ,

		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		AppName:        cfg.AppName,
		SupportURL:     cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewConfirmEmailData(cfg *config.Config, name, email, link string, opts ...Option) EmailData {
	opts = append([]Option{WithVerifyURL(link)}, opts...)
	return NewBaseEmailData(cfg, ConfirmEmail, name, email, opts...)
}
