package enums

import "fmt"

// ZodiacSign is the fixed rashifal title set, in traditional rashi order.
type ZodiacSign string

const (
	ZodiacMesh     ZodiacSign = "Mesh (Aries)"
	ZodiacVrishabh ZodiacSign = "Vrishabh (Taurus)"
	ZodiacMithun   ZodiacSign = "Mithun (Gemini)"
	ZodiacKark     ZodiacSign = "Kark (Cancer)"
	ZodiacSingh    ZodiacSign = "Singh (Leo)"
	ZodiacKanya    ZodiacSign = "Kanya (Virgo)"
	ZodiacTula     ZodiacSign = "Tula (Libra)"
	ZodiacVrischik ZodiacSign = "Vrischik (Scorpio)"
	ZodiacDhanu    ZodiacSign = "Dhanu (Sagittarius)"
	ZodiacMakar    ZodiacSign = "Makar (Capricorn)"
	ZodiacKumbh    ZodiacSign = "Kumbh (Aquarius)"
	ZodiacMeen     ZodiacSign = "Meen (Pisces)"
)

// ZodiacSigns lists every sign in rashi order.
var ZodiacSigns = []ZodiacSign{
	ZodiacMesh,
	ZodiacVrishabh,
	ZodiacMithun,
	ZodiacKark,
	ZodiacSingh,
	ZodiacKanya,
	ZodiacTula,
	ZodiacVrischik,
	ZodiacDhanu,
	ZodiacMakar,
	ZodiacKumbh,
	ZodiacMeen,
}

func (z ZodiacSign) String() string {
	return string(z)
}

func (z ZodiacSign) IsValid() bool {
	for _, candidate := range ZodiacSigns {
		if candidate == z {
			return true
		}
	}
	return false
}

// ParseZodiacSign converts raw input into a ZodiacSign.
func ParseZodiacSign(value string) (ZodiacSign, error) {
	for _, candidate := range ZodiacSigns {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid zodiac sign %q", value)
}
