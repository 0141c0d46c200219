package mail_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zetacorp/billing/internal/mail"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{name: "implicit TLS relay", port: 465},
		{name: "starttls submission relay", port: 587},
		{name: "plain smtp port", port: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer, err := mail.New("smtp.example.test", tt.port, "user", "secret", "billing@example.test", "Your Agency")

			require.NoError(t, err)
			assert.NotNil(t, mailer)
		})
	}
}
