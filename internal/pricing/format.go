package pricing

import "strconv"

// FormatPrice renders a whole-Rupiah amount in the back office's single
// fixed style: "Rp " prefix, thousands grouped with '.', no decimals.
// FormatPrice(15000) == "Rp 15.000". Negative amounts are rejected.
func FormatPrice(amount int64) (string, error) {
	if amount < 0 {
		return "", ErrInvalidAmount
	}

	digits := strconv.FormatInt(amount, 10)

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	return "Rp " + string(out), nil
}
