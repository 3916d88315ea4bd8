package sensor

import "iotracker/internal/domain/sensor"

type ingestInput struct {
	RawBody []byte
}

type ingestOutput struct {
	Body IngestResponse
}

type IngestResponse struct {
	Status string `json:"status" example:"Ok"`
	ID     int64  `json:"id" doc:"Идентификатор сохраненной записи"`
}

type queryInput struct {
	User   string `query:"user" required:"true" minLength:"1" doc:"Логин владельца записей"`
	From   string `query:"from" doc:"Начало интервала, YYYY-MM-DD"`
	To     string `query:"to" doc:"Конец интервала включительно, YYYY-MM-DD"`
	Period string `query:"period" doc:"Готовый интервал: week или month"`
	Date   string `query:"date" doc:"Дата внутри периода, YYYY-MM-DD. По умолчанию сегодня"`
}

type queryOutput struct {
	Body []Reading
}

// Reading одно показание в ответе. Time в миллисекундах Unix.
type Reading struct {
	BPM         int   `json:"bpm"`
	Temperature int   `json:"temperature"`
	Speed       int   `json:"speed"`
	Time        int64 `json:"time"`
}

func toReadings(records []sensor.Record) []Reading {
	out := make([]Reading, 0, len(records))
	for _, r := range records {
		out = append(out, Reading{
			BPM:         r.BPM,
			Temperature: r.Temperature,
			Speed:       r.Speed,
			Time:        r.Time,
		})
	}
	return out
}
