package converter

import (
	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/domain/entity"
	"dailywag-backend/internal/scheduling"
)

func ScheduleToResponse(schedule *entity.WeeklySchedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}

	return &dto.ScheduleResponse{
		ID:        schedule.ID,
		Provider:  schedule.Provider().Key(),
		DoctorID:  schedule.DoctorID,
		DayOfWeek: string(schedule.DayOfWeek),
		StartTime: schedule.StartTime.String(),
		EndTime:   schedule.EndTime.String(),
		IsActive:  schedule.IsActive,
	}
}

func SchedulesToResponses(schedules []entity.WeeklySchedule) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = *ScheduleToResponse(&schedules[i])
	}
	return responses
}

func SlotsToResponses(slots []scheduling.Slot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.SlotResponse{
			Value:     slot.Value.Format(scheduling.SlotValueLayout),
			Display:   slot.Display,
			Available: slot.Available,
		}
	}
	return responses
}
