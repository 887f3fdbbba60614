package lead

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func valid() Submission {
	return Submission{Name: "Ana", Email: "ana@x.com"}
}

func TestValidateAccepts(t *testing.T) {
	s := valid()
	require.NoError(t, Validate(&s))
}

func TestValidateRequiresNameAndEmail(t *testing.T) {
	for _, s := range []Submission{
		{},
		{Name: "Ana"},
		{Email: "ana@x.com"},
	} {
		s := s
		require.ErrorIs(t, Validate(&s), ErrRequired)
	}
}

func TestValidateEmailFormat(t *testing.T) {
	cases := map[string]bool{
		"a@b.co":              true,
		"ana@exemplo.com.br":  true,
		"a@b":                 false,
		"not-an-email":        false,
		"two@@signs@x.com":    false,
		"spaces in@local.com": false,
		"@x.com":              false,
		"a@":                  false,
	}
	for email, ok := range cases {
		s := valid()
		s.Email = email
		err := Validate(&s)
		if ok {
			require.NoError(t, err, email)
		} else {
			require.ErrorIs(t, err, ErrInvalidEmail, email)
		}
	}
}

func TestValidateNameLengthBoundary(t *testing.T) {
	s := valid()
	s.Name = strings.Repeat("a", 120)
	require.NoError(t, Validate(&s))

	s = valid()
	s.Name = strings.Repeat("a", 121)
	require.ErrorIs(t, Validate(&s), ErrNameTooLong)
}

func TestValidateMessageLengthBoundary(t *testing.T) {
	s := valid()
	s.Message = strings.Repeat("m", 2000)
	require.NoError(t, Validate(&s))

	s.Message = strings.Repeat("m", 2001)
	require.ErrorIs(t, Validate(&s), ErrMessageTooLong)
}

func TestValidatePhoneDigitBoundaries(t *testing.T) {
	cases := map[string]bool{
		"(34) 9986-201":      false, // 9 digits
		"(34) 9986-2010":     true,  // 10 digits
		"+55 (34) 99862-0105": true, // 13 digits
		"+55 (34) 99862-0105 ramal 2": false, // 14 digits
	}
	for phone, ok := range cases {
		s := valid()
		s.Phone = phone
		err := Validate(&s)
		if ok {
			require.NoError(t, err, phone)
		} else {
			require.ErrorIs(t, err, ErrInvalidPhone, phone)
		}
	}

	// phone is optional
	s := valid()
	s.Phone = ""
	require.NoError(t, Validate(&s))
}

func TestValidateFirstFailureWins(t *testing.T) {
	s := Submission{
		Name:  strings.Repeat("a", 200),
		Email: "broken",
		Phone: "123",
	}
	// invalid email outranks the over-long name and the bad phone
	require.ErrorIs(t, Validate(&s), ErrInvalidEmail)

	s = Submission{Email: "broken"}
	// missing name outranks the invalid email
	require.ErrorIs(t, Validate(&s), ErrRequired)
}

func TestValidateClampsTrackingFieldsSilently(t *testing.T) {
	s := Submission{
		PagePath: strings.Repeat("p", 600),
		Referrer: strings.Repeat("r", 600),
	}
	// clamping happens even when validation fails
	require.ErrorIs(t, Validate(&s), ErrRequired)
	require.Len(t, s.PagePath, 500)
	require.Len(t, s.Referrer, 500)

	s = valid()
	s.PagePath = "/kits"
	require.NoError(t, Validate(&s))
	require.Equal(t, "/kits", s.PagePath)
}

func TestValidatePassesDescriptiveFieldsThrough(t *testing.T) {
	s := valid()
	s.City = "Uberlândia"
	s.State = "MG"
	s.AverageBill = "acima de R$ 800"
	s.PropertyType = "anything-goes-here"
	s.UTMSource = "<weird&value>"
	require.NoError(t, Validate(&s))
}
