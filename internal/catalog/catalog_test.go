package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPackage(t *testing.T) {
	tests := []struct {
		packageType string
		wantPrice   int
		wantErr     bool
	}{
		{packageType: "2-hour", wantPrice: 350},
		{packageType: "3-hour", wantPrice: 425},
		{packageType: "4-hour", wantPrice: 550},
		{packageType: "5-hour", wantErr: true},
		{packageType: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.packageType, func(t *testing.T) {
			p, err := GetPackage(tc.packageType)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnknownPackage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantPrice, p.Price)
			assert.Equal(t, PackageType(tc.packageType), p.Type)
		})
	}
}

func TestDefaultPackage(t *testing.T) {
	p := DefaultPackage()
	assert.Equal(t, ThreeHour, p.Type)
	assert.True(t, p.Popular)
}

func TestDeposit(t *testing.T) {
	assert.Equal(t, 105, Deposit(350))
	assert.Equal(t, 128, Deposit(425))
	assert.Equal(t, 165, Deposit(550))
	assert.Equal(t, 0, Deposit(1))
	assert.Equal(t, 1, Deposit(2))
}

func TestAddOnsTotal(t *testing.T) {
	total, err := AddOnsTotal([]string{"video-guestbook", "photo-book"})
	require.NoError(t, err)
	assert.Equal(t, 250, total)

	total, err = AddOnsTotal(nil)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = AddOnsTotal([]string{"photo-book", "fog-machine"})
	assert.ErrorIs(t, err, ErrUnknownAddOn)
}

func TestParsePaymentMethod(t *testing.T) {
	for _, m := range []string{"paypal", "venmo", "cashapp", "applepay"} {
		got, err := ParsePaymentMethod(m)
		require.NoError(t, err)
		assert.Equal(t, PaymentMethod(m), got)
	}

	_, err := ParsePaymentMethod("cash")
	assert.ErrorIs(t, err, ErrUnknownPaymentMethod)
}

func TestGet_ReturnsCopies(t *testing.T) {
	c := Get()
	require.Len(t, c.Packages, 3)
	require.Len(t, c.AddOns, 3)
	assert.Equal(t, DepositPercent, c.DepositPercent)
	assert.Len(t, c.Customizations.LEDColors, 6)

	c.Packages[0].Price = 1
	c.Packages[0].Features[0] = "changed"
	c.AddOns[0].Price = 1

	fresh := Get()
	assert.Equal(t, 350, fresh.Packages[0].Price)
	assert.Equal(t, "Unlimited Digital Pictures", fresh.Packages[0].Features[0])
	assert.Equal(t, 150, fresh.AddOns[0].Price)
}
