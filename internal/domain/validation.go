package domain

import "regexp"

var loginRe = regexp.MustCompile(`^[A-Za-z0-9_]{4,32}$`)

func ValidLogin(s string) bool { return loginRe.MatchString(s) }

// Координаты WGS84
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func ValidReportTitle(s string) bool { return len(s) >= 3 && len(s) <= 200 }

func ValidCommentText(s string) bool { return len(s) >= 1 && len(s) <= 2000 }
