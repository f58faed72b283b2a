package variables

import "strconv"

const (
	BaseLinNodes = "base-lin"
	BaseAngNodes = "base-ang"
)

func EEMotionLinNodes(ee int) string {
	return "ee-motion-lin_" + strconv.Itoa(ee)
}

func EEWrenchLinNodes(ee int) string {
	return "ee-wrench-lin_" + strconv.Itoa(ee)
}

func EEWrenchAngNodes(ee int) string {
	return "ee-wrench-ang_" + strconv.Itoa(ee)
}

func EESchedule(ee int) string {
	return "ee-schedule_" + strconv.Itoa(ee)
}
