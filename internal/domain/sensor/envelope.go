package sensor

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Uplink конверт, который сетевой сервер LoRaWAN отправляет на /data.
// Неизвестные поля игнорируются.
type Uplink struct {
	EndDeviceIDs   *EndDeviceIDs  `json:"end_device_ids" validate:"required"`
	CorrelationIDs []string       `json:"correlation_ids"`
	ReceivedAt     string         `json:"received_at"`
	UplinkMessage  *UplinkMessage `json:"uplink_message" validate:"required"`
}

type EndDeviceIDs struct {
	DeviceID       string          `json:"device_id" validate:"required,max=255"`
	ApplicationIDs *ApplicationIDs `json:"application_ids"`
}

type ApplicationIDs struct {
	ApplicationID string `json:"application_id"`
}

type UplinkMessage struct {
	DecodedPayload *DecodedPayload `json:"decoded_payload" validate:"required"`
}

type DecodedPayload struct {
	BPM         *int `json:"bpm" validate:"required"`
	Temperature *int `json:"temperature" validate:"required"`
	Speed       *int `json:"speed" validate:"required"`
	// старые прошивки декодера отдают скорость под ключом vitesse
	Vitesse *int `json:"vitesse"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeUplink разбирает и проверяет конверт. Все ошибки оборачивают ErrMalformed.
func DecodeUplink(raw []byte) (Uplink, error) {
	var up Uplink
	if len(raw) == 0 {
		return up, fmt.Errorf("%w: empty body", ErrMalformed)
	}

	if err := json.Unmarshal(raw, &up); err != nil {
		return Uplink{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if p := up.payload(); p != nil && p.Speed == nil {
		p.Speed = p.Vitesse
	}

	if err := validate.Struct(up); err != nil {
		return Uplink{}, fmt.Errorf("%w: %s", ErrMalformed, describe(err))
	}

	return up, nil
}

func (u Uplink) payload() *DecodedPayload {
	if u.UplinkMessage == nil {
		return nil
	}
	return u.UplinkMessage.DecodedPayload
}

// ReceivedTime время приёма на шлюзе, если оно передано в RFC3339.
func (u Uplink) ReceivedTime() (time.Time, bool) {
	if u.ReceivedAt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, u.ReceivedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace начинается с имени корневой структуры
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		fields = append(fields, fmt.Sprintf("%s (%s)", ns, fe.Tag()))
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}
