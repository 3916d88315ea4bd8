package sensor

import "time"

// Record одно показание датчика. Time - Unix-время в миллисекундах.
type Record struct {
	ID          int64
	UserLogin   string
	DeviceID    string
	BPM         int
	Temperature int
	Speed       int
	Time        int64
}

func (r Record) Timestamp() time.Time {
	return time.UnixMilli(r.Time)
}
