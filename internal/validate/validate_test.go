package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		form RegisterForm
		want Errors
	}{
		{
			name: "valid",
			form: RegisterForm{Name: "Ana", Email: "ana@example.com", Password: "123456"},
			want: Errors{},
		},
		{
			name: "blank name",
			form: RegisterForm{Name: "   ", Email: "ana@example.com", Password: "123456"},
			want: Errors{"name": MsgName},
		},
		{
			name: "bad email and short password",
			form: RegisterForm{Name: "Ana", Email: "ana@example", Password: "12345"},
			want: Errors{"email": MsgEmail, "password": MsgPasswordShort},
		},
		{
			name: "email with spaces",
			form: RegisterForm{Name: "Ana", Email: "ana lima@example.com", Password: "123456"},
			want: Errors{"email": MsgEmail},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Register(tt.form))
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	assert.True(t, Login(LoginForm{Email: "ana@example.com", Password: "x"}).Valid())

	errs := Login(LoginForm{Email: "nope", Password: "  "})
	assert.Equal(t, Errors{"email": MsgEmail, "password": MsgPasswordBlank}, errs)
}

func TestTrade(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		form TradeForm
		want Errors
	}{
		{
			name: "valid",
			form: TradeForm{OfferingIDs: []string{"a"}, ReceivingIDs: []string{"b"}},
			want: Errors{},
		},
		{
			name: "nothing selected",
			form: TradeForm{},
			want: Errors{"offeringIds": MsgOffering, "receivingIds": MsgReceiving},
		},
		{
			name: "overlap",
			form: TradeForm{OfferingIDs: []string{"a", "b"}, ReceivingIDs: []string{"c", "b"}},
			want: Errors{"receivingIds": MsgOverlap},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Trade(tt.form))
		})
	}
}

func TestErrors_Err(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Errors{}.Err())

	err := Errors{"password": MsgPasswordShort, "email": MsgEmail}.Err()
	require.Error(t, err)
	assert.Equal(t, "email: "+MsgEmail+"\npassword: "+MsgPasswordShort, err.Error())
}
