package alarm

import (
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Payload field names.
const (
	FieldID                = "id"
	FieldHour              = "hour"
	FieldMinute            = "minute"
	FieldDays              = "days"
	FieldIsPrimarySchedule = "is_primary_schedule"
	FieldActive            = "active"
	FieldIDs               = "ids"
	FieldSuccess           = "success"
	FieldNotFound          = "not_found"
	FieldMessage           = "message"
	FieldAt                = "at"
	FieldAlarmIDs          = "alarm_ids"
)

// Remove outcome messages.
const (
	MessageAlarmsRemoved = "Alarms removed successfully"
	MessageSomeNotFound  = "Some alarms were not found"
)

// maxIntegralFieldValue bounds numeric fields before conversion to int.
const maxIntegralFieldValue = 1 << 31

// RemoveReply is the decoded response of RemoveAlarms.
type RemoveReply struct {
	Success  bool
	NotFound []string
	Message  string
}

// AlarmFromStruct validates a dynamic payload into a domain alarm.
// Every field is required; days may be an empty list, meaning every day.
func AlarmFromStruct(payload *structpb.Struct) (domain.Alarm, error) {
	if payload == nil {
		return domain.Alarm{}, domain.InvalidField("alarm", "payload is required")
	}

	fields := payload.GetFields()

	id, err := stringField(fields, FieldID)
	if err != nil {
		return domain.Alarm{}, err
	}

	hour, err := intField(fields, FieldHour)
	if err != nil {
		return domain.Alarm{}, err
	}

	minute, err := intField(fields, FieldMinute)
	if err != nil {
		return domain.Alarm{}, err
	}

	dayNames, err := stringListField(fields, FieldDays)
	if err != nil {
		return domain.Alarm{}, err
	}

	days, err := domain.ParseWeekdays(dayNames)
	if err != nil {
		return domain.Alarm{}, err
	}

	isPrimary, err := boolField(fields, FieldIsPrimarySchedule)
	if err != nil {
		return domain.Alarm{}, err
	}

	active, err := boolField(fields, FieldActive)
	if err != nil {
		return domain.Alarm{}, err
	}

	alarm := domain.Alarm{
		ID:                id,
		Hour:              hour,
		Minute:            minute,
		Days:              days,
		IsPrimarySchedule: isPrimary,
		Active:            active,
	}

	if err := alarm.Validate(); err != nil {
		return domain.Alarm{}, err
	}

	return alarm, nil
}

// AlarmToStruct renders an alarm as a payload.
func AlarmToStruct(alarm domain.Alarm) *structpb.Struct {
	days := make([]*structpb.Value, 0, len(alarm.Days))
	for _, name := range domain.WeekdayNames(alarm.Days) {
		days = append(days, structpb.NewStringValue(name))
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldID:                structpb.NewStringValue(alarm.ID),
		FieldHour:              structpb.NewNumberValue(float64(alarm.Hour)),
		FieldMinute:            structpb.NewNumberValue(float64(alarm.Minute)),
		FieldDays:              structpb.NewListValue(&structpb.ListValue{Values: days}),
		FieldIsPrimarySchedule: structpb.NewBoolValue(alarm.IsPrimarySchedule),
		FieldActive:            structpb.NewBoolValue(alarm.Active),
	}}
}

// AlarmsToList renders alarms in order.
func AlarmsToList(alarms []domain.Alarm) *structpb.ListValue {
	values := make([]*structpb.Value, 0, len(alarms))
	for _, alarm := range alarms {
		values = append(values, structpb.NewStructValue(AlarmToStruct(alarm)))
	}

	return &structpb.ListValue{Values: values}
}

// AlarmsFromList decodes a ListAlarms response.
func AlarmsFromList(list *structpb.ListValue) ([]domain.Alarm, error) {
	alarms := make([]domain.Alarm, 0, len(list.GetValues()))

	for i, value := range list.GetValues() {
		payload := value.GetStructValue()
		if payload == nil {
			return nil, domain.InvalidField(fmt.Sprintf("alarms[%d]", i), "must be an object")
		}

		alarm, err := AlarmFromStruct(payload)
		if err != nil {
			return nil, fmt.Errorf("alarms[%d]: %w", i, err)
		}

		alarms = append(alarms, alarm)
	}

	return alarms, nil
}

// IDsToStruct builds a RemoveAlarms request.
func IDsToStruct(ids []string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldIDs: stringList(ids),
	}}
}

// IDsFromStruct validates a RemoveAlarms request.
func IDsFromStruct(payload *structpb.Struct) ([]string, error) {
	ids, err := stringListField(payload.GetFields(), FieldIDs)
	if err != nil {
		return nil, err
	}

	for i, id := range ids {
		if id == "" {
			return nil, domain.InvalidField(FieldIDs, "element %d must not be empty", i)
		}
	}

	return ids, nil
}

// RemoveReplyToStruct renders the outcome of RemoveAlarms.
func RemoveReplyToStruct(notFound []string) *structpb.Struct {
	message := MessageAlarmsRemoved
	if len(notFound) > 0 {
		message = MessageSomeNotFound
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldSuccess:  structpb.NewBoolValue(len(notFound) == 0),
		FieldNotFound: stringList(notFound),
		FieldMessage:  structpb.NewStringValue(message),
	}}
}

// RemoveReplyFromStruct decodes a RemoveAlarms response.
func RemoveReplyFromStruct(payload *structpb.Struct) (RemoveReply, error) {
	fields := payload.GetFields()

	success, err := boolField(fields, FieldSuccess)
	if err != nil {
		return RemoveReply{}, err
	}

	notFound, err := stringListField(fields, FieldNotFound)
	if err != nil {
		return RemoveReply{}, err
	}

	return RemoveReply{
		Success:  success,
		NotFound: notFound,
		Message:  fields[FieldMessage].GetStringValue(),
	}, nil
}

// FireEventToStruct renders the pending fire event; nothing scheduled is an empty object.
func FireEventToStruct(event domain.FireEvent) *structpb.Struct {
	if event.IsZero() {
		return &structpb.Struct{Fields: map[string]*structpb.Value{}}
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldAt:       structpb.NewStringValue(event.At.Format(time.RFC3339)),
		FieldAlarmIDs: stringList(event.AlarmIDs),
	}}
}

// FireEventFromStruct decodes a GetNextFire response.
func FireEventFromStruct(payload *structpb.Struct) (domain.FireEvent, error) {
	fields := payload.GetFields()
	if _, ok := fields[FieldAt]; !ok {
		return domain.FireEvent{}, nil
	}

	raw, err := stringField(fields, FieldAt)
	if err != nil {
		return domain.FireEvent{}, err
	}

	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return domain.FireEvent{}, domain.InvalidField(FieldAt, "must be an RFC 3339 timestamp: %v", err)
	}

	ids, err := stringListField(fields, FieldAlarmIDs)
	if err != nil {
		return domain.FireEvent{}, err
	}

	return domain.FireEvent{At: at, AlarmIDs: ids}, nil
}

// present returns the field value, treating JSON null as absent.
func present(fields map[string]*structpb.Value, name string) (*structpb.Value, error) {
	value, ok := fields[name]
	if !ok || value == nil || value.GetKind() == nil {
		return nil, domain.MissingField(name)
	}

	if _, isNull := value.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, domain.MissingField(name)
	}

	return value, nil
}

func stringField(fields map[string]*structpb.Value, name string) (string, error) {
	value, err := present(fields, name)
	if err != nil {
		return "", err
	}

	kind, ok := value.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", domain.InvalidField(name, "must be a string")
	}

	return kind.StringValue, nil
}

func intField(fields map[string]*structpb.Value, name string) (int, error) {
	value, err := present(fields, name)
	if err != nil {
		return 0, err
	}

	kind, ok := value.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, domain.InvalidField(name, "must be a number")
	}

	number := kind.NumberValue
	if math.IsNaN(number) || math.IsInf(number, 0) || number != math.Trunc(number) {
		return 0, domain.InvalidField(name, "must be an integer, got %v", number)
	}

	if math.Abs(number) >= maxIntegralFieldValue {
		return 0, domain.InvalidField(name, "out of range: %v", number)
	}

	return int(number), nil
}

func boolField(fields map[string]*structpb.Value, name string) (bool, error) {
	value, err := present(fields, name)
	if err != nil {
		return false, err
	}

	kind, ok := value.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, domain.InvalidField(name, "must be a boolean")
	}

	return kind.BoolValue, nil
}

func stringListField(fields map[string]*structpb.Value, name string) ([]string, error) {
	value, err := present(fields, name)
	if err != nil {
		return nil, err
	}

	kind, ok := value.GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, domain.InvalidField(name, "must be a list of strings")
	}

	values := kind.ListValue.GetValues()
	if len(values) == 0 {
		return nil, nil
	}

	result := make([]string, 0, len(values))

	for i, item := range values {
		s, isString := item.GetKind().(*structpb.Value_StringValue)
		if !isString {
			return nil, domain.InvalidField(name, "element %d must be a string", i)
		}

		result = append(result, s.StringValue)
	}

	return result, nil
}

func stringList(items []string) *structpb.Value {
	values := make([]*structpb.Value, 0, len(items))
	for _, item := range items {
		values = append(values, structpb.NewStringValue(item))
	}

	return structpb.NewListValue(&structpb.ListValue{Values: values})
}
