package fields

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type MovieRuntime int32

func (m MovieRuntime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(fmt.Sprintf("%d mins", m))), nil
}

func (m *MovieRuntime) UnmarshalJSON(data []byte) error {
	var mins int32
	if err := json.Unmarshal(data, &mins); err == nil {
		*m = MovieRuntime(mins)
		return nil
	}
	unquoted, err := strconv.Unquote(string(data))
	if err != nil {
		return ErrInvalidRuntimeFormat
	}
	if _, err := fmt.Sscanf(unquoted, "%d mins", &mins); err != nil {
		return ErrInvalidRuntimeFormat
	}
	*m = MovieRuntime(mins)
	return nil
}

// Rating is the MPAA rating of a movie. Zero value means not rated.
type Rating int16

const (
	NotRated Rating = iota
	RatedG
	RatedPG
	RatedPG13
	RatedR
	RatedNC17
)

var ratingLabels = map[Rating]string{
	NotRated:  "NR - Not Rated",
	RatedG:    "G - General Audiences",
	RatedPG:   "PG - Parental Guidance Suggested",
	RatedPG13: "PG-13 - Parents Strongly Cautioned",
	RatedR:    "R - Restricted",
	RatedNC17: "NC-17 - Adults Only",
}

func (r Rating) Valid() bool {
	_, ok := ratingLabels[r]
	return ok
}

func (r Rating) String() string {
	if label, ok := ratingLabels[r]; ok {
		return label
	}
	return "unknown rating " + strconv.Itoa(int(r))
}

func (r Rating) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code  int16  `json:"code"`
		Label string `json:"label"`
	}{int16(r), r.String()})
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	var code int16
	if err := json.Unmarshal(data, &code); err != nil {
		return ErrInvalidRating
	}
	if !Rating(code).Valid() {
		return ErrInvalidRating
	}
	*r = Rating(code)
	return nil
}
