package catalog

import (
	"errors"
	"fmt"
)

type PackageType string

const (
	TwoHour   PackageType = "2-hour"
	ThreeHour PackageType = "3-hour"
	FourHour  PackageType = "4-hour"
)

type PaymentMethod string

const (
	PayPal   PaymentMethod = "paypal"
	Venmo    PaymentMethod = "venmo"
	CashApp  PaymentMethod = "cashapp"
	ApplePay PaymentMethod = "applepay"
)

// DepositPercent is the share of the package price due at booking time.
const DepositPercent = 30

var (
	ErrUnknownPackage       = errors.New("unknown package type")
	ErrUnknownAddOn         = errors.New("unknown add-on")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)

type Package struct {
	Type     PackageType `json:"type"`
	Name     string      `json:"name"`
	Price    int         `json:"price"`
	Hours    int         `json:"hours"`
	Features []string    `json:"features"`
	Popular  bool        `json:"popular,omitempty"`
}

type AddOn struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Customizations struct {
	Templates []Option `json:"templates"`
	LEDColors []Option `json:"ledColors"`
	Backdrops []Option `json:"backdrops"`
}

type Catalog struct {
	Packages       []Package       `json:"packages"`
	AddOns         []AddOn         `json:"addOns"`
	Customizations Customizations  `json:"customizations"`
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
	DepositPercent int             `json:"depositPercent"`
}

var packages = []Package{
	{
		Type:  TwoHour,
		Name:  "2 Hour Package",
		Price: 350,
		Hours: 2,
		Features: []string{
			"Unlimited Digital Pictures",
			"Custom Digital Layouts",
			"Professional Attendant",
			"Free Travel (within service area)",
			"MMS & Email Sharing",
		},
	},
	{
		Type:    ThreeHour,
		Name:    "3 Hour Package",
		Price:   425,
		Hours:   3,
		Popular: true,
		Features: []string{
			"All 2-Hour features",
			"Extended photo session",
			"Premium prop selection",
			"Custom backdrop options",
			"USB with all photos",
		},
	},
	{
		Type:  FourHour,
		Name:  "4 Hour Package",
		Price: 550,
		Hours: 4,
		Features: []string{
			"All 3-Hour features",
			"Video guest book",
			"Photo book creation",
			"Custom neon signage",
			"Social media integration",
		},
	},
}

var addOns = []AddOn{
	{ID: "video-guestbook", Name: "Video Guestbook", Description: "Interactive video messages from guests", Price: 150},
	{ID: "custom-neon", Name: "Custom Neon Signs", Description: "Personalized LED neon signage", Price: 200},
	{ID: "photo-book", Name: "Photo Book", Description: "Hardcover coffee table photo book", Price: 100},
}

var customizations = Customizations{
	Templates: []Option{
		{ID: "elegant-wedding", Name: "Elegant Wedding"},
		{ID: "modern-corporate", Name: "Modern Corporate"},
		{ID: "fun-party", Name: "Fun Party"},
	},
	LEDColors: []Option{
		{ID: "red", Name: "Red"},
		{ID: "blue", Name: "Blue"},
		{ID: "green", Name: "Green"},
		{ID: "purple", Name: "Purple"},
		{ID: "yellow", Name: "Yellow"},
		{ID: "pink", Name: "Pink"},
	},
	Backdrops: []Option{
		{ID: "silk-flower", Name: "Silk Flower Wall"},
		{ID: "wooden-rustic", Name: "Wooden Rustic"},
		{ID: "shimmer-wall", Name: "Shimmer Wall"},
		{ID: "copper-frame", Name: "Copper Frame"},
	},
}

var paymentMethods = []PaymentMethod{PayPal, Venmo, CashApp, ApplePay}

// Get returns a fresh copy of the whole catalog.
func Get() Catalog {
	return Catalog{
		Packages: Packages(),
		AddOns:   append([]AddOn(nil), addOns...),
		Customizations: Customizations{
			Templates: append([]Option(nil), customizations.Templates...),
			LEDColors: append([]Option(nil), customizations.LEDColors...),
			Backdrops: append([]Option(nil), customizations.Backdrops...),
		},
		PaymentMethods: append([]PaymentMethod(nil), paymentMethods...),
		DepositPercent: DepositPercent,
	}
}

func Packages() []Package {
	result := make([]Package, len(packages))
	for i, p := range packages {
		p.Features = append([]string(nil), p.Features...)
		result[i] = p
	}
	return result
}

func GetPackage(packageType string) (Package, error) {
	switch PackageType(packageType) {
	case TwoHour, ThreeHour, FourHour:
		for _, p := range Packages() {
			if p.Type == PackageType(packageType) {
				return p, nil
			}
		}
	}
	return Package{}, fmt.Errorf("%w: %q", ErrUnknownPackage, packageType)
}

// DefaultPackage is the package preselected in the booking wizard.
func DefaultPackage() Package {
	p, _ := GetPackage(string(ThreeHour))
	return p
}

func GetAddOn(id string) (AddOn, error) {
	for _, a := range addOns {
		if a.ID == id {
			return a, nil
		}
	}
	return AddOn{}, fmt.Errorf("%w: %q", ErrUnknownAddOn, id)
}

func AddOnsTotal(ids []string) (int, error) {
	total := 0
	for _, id := range ids {
		a, err := GetAddOn(id)
		if err != nil {
			return 0, err
		}
		total += a.Price
	}
	return total, nil
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PayPal, Venmo, CashApp, ApplePay:
		return PaymentMethod(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, s)
	}
}

// Deposit is DepositPercent of price rounded half up, in whole currency units.
func Deposit(price int) int {
	return (price*DepositPercent + 50) / 100
}
