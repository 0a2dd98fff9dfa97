package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	degreeSymbol = "°"
)

// Только десятичная запись: знак, цифры, дробная часть, экспонента.
// strconv.ParseFloat сам по себе принимает ещё hex, NaN и Inf.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseCoordinates разбирает пару широта/долгота, введённую вручную
// ("55,75222°", "37.61556"). Результат либо целиком валиден, либо ok=false.
func ParseCoordinates(latText, lonText string) (lat, lon float64, ok bool) {
	lat, err := parseDegrees(latText)
	if err != nil {
		return 0, 0, false
	}
	lon, err = parseDegrees(lonText)
	if err != nil {
		return 0, 0, false
	}
	if !ValidLatitude(lat) || !ValidLongitude(lon) {
		return 0, 0, false
	}
	return lat, lon, true
}

func ValidLatitude(v float64) bool {
	return v >= MinLatitude && v <= MaxLatitude
}

func ValidLongitude(v float64) bool {
	return v >= MinLongitude && v <= MaxLongitude
}

// FormatCoordinate записывает координату так, как её вводит организатор:
// пять знаков после запятой и знак градуса.
func FormatCoordinate(v float64) string {
	return strings.Replace(fmt.Sprintf("%.5f", v), ".", ",", 1) + degreeSymbol
}

func normalizeDegrees(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, degreeSymbol)
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, ",", ".")
}

func parseDegrees(s string) (float64, error) {
	s = normalizeDegrees(s)
	if !decimalPattern.MatchString(s) {
		return 0, fmt.Errorf("not a decimal number: %q", s)
	}
	return strconv.ParseFloat(s, 64)
}
