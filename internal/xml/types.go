package xml

// xCal element names used in a recur value
const (
	TagRecur      = "recur"
	TagFreq       = "freq"
	TagInterval   = "interval"
	TagByDay      = "byday"
	TagByMonthDay = "bymonthday"
)
