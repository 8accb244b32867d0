package util

// Lerp realiza interpolação linear entre dois floats.
func Lerp(start, end, amount float32) float32 {
	return start + amount*(end-start)
}

// MaxF retorna o maior de dois float32.
func MaxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// ClampF limita v ao intervalo [low, high].
func ClampF(v, low, high float32) float32 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// ClampInt limita v ao intervalo [low, high].
func ClampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
