package dashboard

import (
	"github.com/weatherboard/weatherboard/internal/format"
	"github.com/weatherboard/weatherboard/internal/openweather"
)

const (
	hourlySlots = 24
	dailyCount  = 7

	// The forecast API samples every 3 hours; 8 samples span a day.
	dailyStartIndex = 7
	dailyStep       = 8

	secondsPerHour = 3600
	secondsPerDay  = 86400
)

// synthesizeHourly fabricates an hourly-looking strip from 3-hour
// forecast points: each point is repeated three times with the
// displayed timestamp advanced one hour per repetition, stopping at
// 24 slots or when the source list runs out.
func synthesizeHourly(points []openweather.ForecastPoint, tzOffsetSec int) []HourlySlot {
	slots := make([]HourlySlot, 0, hourlySlots)

	for _, p := range points {
		for rep := 0; rep < 3; rep++ {
			if len(slots) == hourlySlots {
				return slots
			}
			ts := p.Dt + int64(rep)*secondsPerHour
			slots = append(slots, HourlySlot{
				Unix:         ts,
				HourLabel:    format.Hour(ts, tzOffsetSec),
				TempC:        p.Main.Temp,
				Icon:         iconOf(p.Weather),
				WindSpeedKMH: format.MPSToKMH(p.Wind.Speed),
				WindDeg:      p.Wind.Deg,
			})
		}
	}
	return slots
}

// synthesizeDaily picks one point per day starting near +21h (index
// 7, then every 8th sample) for up to 7 entries. The API only covers
// five days, so the tail is padded by repeating the last point with
// its displayed date advanced (daysProcessed - 4) days per pad; those
// entries are marked Synthetic.
func synthesizeDaily(points []openweather.ForecastPoint, tzOffsetSec int) []DailyEntry {
	if len(points) == 0 {
		return nil
	}

	entries := make([]DailyEntry, 0, dailyCount)
	for i := dailyStartIndex; i < len(points) && len(entries) < dailyCount; i += dailyStep {
		entries = append(entries, dailyEntryFrom(points[i], points[i].Dt, tzOffsetSec, false))
	}

	last := points[len(points)-1]
	for len(entries) < dailyCount {
		offsetDays := int64(len(entries) - 4)
		ts := last.Dt + offsetDays*secondsPerDay
		entries = append(entries, dailyEntryFrom(last, ts, tzOffsetSec, true))
	}
	return entries
}

func dailyEntryFrom(p openweather.ForecastPoint, displayUnix int64, tzOffsetSec int, synthetic bool) DailyEntry {
	return DailyEntry{
		Unix:      displayUnix,
		DateLabel: format.Date(displayUnix, tzOffsetSec),
		TempMaxC:  p.Main.TempMax,
		Icon:      iconOf(p.Weather),
		Condition: conditionOf(p.Weather),
		Synthetic: synthetic,
	}
}

func iconOf(conditions []openweather.Condition) string {
	if len(conditions) == 0 {
		return ""
	}
	return conditions[0].Icon
}

func conditionOf(conditions []openweather.Condition) string {
	if len(conditions) == 0 {
		return ""
	}
	return conditions[0].Description
}
