package timing

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// timing sheets mark pit/flagged laps in-band; those markers are stripped
// before any numeric parsing.
var annotationMarkers = strings.NewReplacer("*", "", "T", "", "P", "")

// ParseTime converts a track-timing string to seconds. Accepted forms are
// "M'SS.sss" (minute, apostrophe, fractional seconds) and a bare numeric
// seconds value such as "89.5".
func ParseTime(text string) (float64, error) {
	t := strings.TrimSpace(annotationMarkers.Replace(strings.TrimSpace(text)))
	if t == "" {
		return 0, fmt.Errorf("empty time string %q", text)
	}
	if strings.Contains(t, "'") {
		parts := strings.Split(t, "'")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return 0, fmt.Errorf("malformed lap time %q", text)
		}
		minutes, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("malformed minutes in %q", text)
		}
		seconds, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, fmt.Errorf("malformed seconds in %q", text)
		}
		return float64(minutes)*60 + seconds, nil
	}
	seconds, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed lap time %q", text)
	}
	return seconds, nil
}

// method to convert from seconds to minutes:seconds:milliseconds
func SecondsToMinutes(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	minutes := int(seconds / 60)
	seconds = seconds - float64(minutes*60)
	milliseconds := int((seconds - float64(int(seconds))) * 1000)
	return fmt.Sprintf("%02d:%02d.%03d", minutes, int(seconds), milliseconds)
}

func SecondsToDiff(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	diff := fmt.Sprintf("%.3fs", seconds)
	chars := len(diff)
	if chars < 9 {
		// add spaces to the left
		diff = strings.Repeat(" ", 9-chars) + diff
	}
	return diff
}

// method to convert to seconds and 3 milliseconds
func ToSectorTime(t float64) string {
	if t <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.3f", t)
}

// RiderCodeName reads a name with possible surname and returns the first
// letter of the name plus the first letters of the surname, e.g.
// "Francesco BAGNAIA" -> "FBA".
func RiderCodeName(name string) string {
	if name == "" {
		return ""
	}
	words := strings.Split(name, " ")
	code := string(words[0][0])
	if len(words) > 1 {
		if len(words[1]) > 2 {
			code += words[1][:2]
		} else {
			code += words[1]
		}
	} else {
		if len(words[0]) > 2 {
			code += words[0][1:3]
		} else {
			code += words[0]
		}
	}
	return strings.ToUpper(code)
}

// convert name to a hash with a limit of 15 characters
func ToID(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return fmt.Sprint(h.Sum32())
}
