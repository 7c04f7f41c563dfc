package alarm

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// TestAlarmFromStruct_FieldErrors reports the offending field by name.
func TestAlarmFromStruct_FieldErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		value *structpb.Value
	}{
		{name: "null id", field: "id", value: structpb.NewNullValue()},
		{name: "numeric id", field: "id", value: structpb.NewNumberValue(1)},
		{name: "fractional hour", field: "hour", value: structpb.NewNumberValue(7.5)},
		{name: "string hour", field: "hour", value: structpb.NewStringValue("7")},
		{name: "huge minute", field: "minute", value: structpb.NewNumberValue(math.MaxInt64)},
		{name: "days not a list", field: "days", value: structpb.NewStringValue("mon")},
		{name: "unknown weekday", field: "days", value: structpb.NewListValue(&structpb.ListValue{
			Values: []*structpb.Value{structpb.NewStringValue("someday")},
		})},
		{name: "numeric weekday", field: "days", value: structpb.NewListValue(&structpb.ListValue{
			Values: []*structpb.Value{structpb.NewNumberValue(1)},
		})},
		{name: "active as string", field: "active", value: structpb.NewStringValue("true")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload := alarmPayload(t, "a")
			payload.Fields[tt.field] = tt.value

			_, err := AlarmFromStruct(payload)
			require.ErrorIs(t, err, domain.ErrValidation)

			var validation *domain.ValidationError
			require.ErrorAs(t, err, &validation)
			require.Equal(t, tt.field, validation.Field)
		})
	}
}

// TestAlarmFromStruct_EmptyDays means every day.
func TestAlarmFromStruct_EmptyDays(t *testing.T) {
	t.Parallel()

	payload := alarmPayload(t, "a")
	payload.Fields["days"] = structpb.NewListValue(new(structpb.ListValue))

	alarm, err := AlarmFromStruct(payload)
	require.NoError(t, err)
	require.True(t, alarm.EveryDay())

	// Duplicated weekdays are rejected by alarm validation.
	payload.Fields["days"] = structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
		structpb.NewStringValue("mon"),
		structpb.NewStringValue("monday"),
	}})

	_, err = AlarmFromStruct(payload)
	require.ErrorIs(t, err, domain.ErrValidation)
}

// TestAlarmToStruct renders what AlarmFromStruct accepts.
func TestAlarmToStruct(t *testing.T) {
	t.Parallel()

	alarm := domain.Alarm{ID: "x", Hour: 23, Minute: 59, Days: []time.Weekday{time.Sunday}, Active: true}

	got, err := AlarmFromStruct(AlarmToStruct(alarm))
	require.NoError(t, err)
	require.Equal(t, alarm, got)

	require.Equal(t, map[string]any{
		"id":                  "x",
		"hour":                float64(23),
		"minute":              float64(59),
		"days":                []any{"sun"},
		"is_primary_schedule": false,
		"active":              true,
	}, AlarmToStruct(alarm).AsMap())
}

// TestIDsFromStruct validates the removal request.
func TestIDsFromStruct(t *testing.T) {
	t.Parallel()

	ids, err := IDsFromStruct(IDsToStruct([]string{"a", "b"}))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, ids)

	_, err = IDsFromStruct(new(structpb.Struct))
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = IDsFromStruct(IDsToStruct([]string{""}))
	require.ErrorIs(t, err, domain.ErrValidation)
}

// TestFireEventStruct treats an empty object as nothing scheduled.
func TestFireEventStruct(t *testing.T) {
	t.Parallel()

	event, err := FireEventFromStruct(FireEventToStruct(domain.FireEvent{}))
	require.NoError(t, err)
	require.True(t, event.IsZero())

	loc := time.FixedZone("UTC+3", 3*60*60)
	at := time.Date(2024, time.March, 4, 6, 45, 0, 0, loc)

	event, err = FireEventFromStruct(FireEventToStruct(domain.FireEvent{At: at, AlarmIDs: []string{"a", "b"}}))
	require.NoError(t, err)
	require.True(t, at.Equal(event.At))
	require.Equal(t, []string{"a", "b"}, event.AlarmIDs)
}
