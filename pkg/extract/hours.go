package extract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"store-scraper/pkg/domain"
)

var weekdayRank = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}

// tradingHoursEntry builds one day's entry. An entry missing either the open
// or the close time marks the day as closed.
func tradingHoursEntry(day, opens, closes string) domain.TradingHours {
	opens = strings.TrimSpace(opens)
	closes = strings.TrimSpace(closes)

	if opens == "" || closes == "" {
		return domain.TradingHours{Name: day, Description: "Closed", IsClosed: true}
	}
	return domain.TradingHours{
		Name:        day,
		Description: formatClock(opens) + " - " + formatClock(closes),
	}
}

// sortTradingHours orders entries Monday-first; unrecognized day labels keep
// their relative order after the known ones.
func sortTradingHours(hours []domain.TradingHours) {
	sort.SliceStable(hours, func(i, j int) bool {
		return dayRank(hours[i].Name) < dayRank(hours[j].Name)
	})
}

func dayRank(day string) int {
	if rank, ok := weekdayRank[day]; ok {
		return rank
	}
	return len(weekdayRank)
}

// formatClock renders a 24-hour "HH:MM" time as a compact 12-hour string:
// "11:00" -> "11AM", "21:00" -> "9PM". Source times are on the hour in
// practice; stray minutes are kept rather than dropped ("21:30" -> "9:30PM").
func formatClock(hhmm string) string {
	hourStr, minuteStr, hasMinute := strings.Cut(hhmm, ":")
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return hhmm
	}

	minute := 0
	if hasMinute {
		if m, err := strconv.Atoi(minuteStr); err == nil {
			minute = m
		}
	}

	suffix := "AM"
	h := hour % 24
	if h >= 12 {
		suffix = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}

	if minute != 0 {
		return fmt.Sprintf("%d:%02d%s", h, minute, suffix)
	}
	return fmt.Sprintf("%d%s", h, suffix)
}
