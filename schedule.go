package heroscene

import "fmt"

// Stage groups loop callbacks. Stages run in the order of DefaultStages.
type Stage struct {
	Name string
}

var (
	PreUpdate  = Stage{Name: "PreUpdate"}
	Update     = Stage{Name: "Update"}
	PostUpdate = Stage{Name: "PostUpdate"}
	Render     = Stage{Name: "Render"}
)

func DefaultStages() []Stage {
	return []Stage{PreUpdate, Update, PostUpdate, Render}
}

func (s Stage) String() string { return s.Name }

func (l *RenderLoop) stageIndex(stage Stage) int {
	for i, s := range l.stages {
		if s.Name == stage.Name {
			return i
		}
	}
	panic(fmt.Sprintf("Stage %v doesn't exist", stage.Name))
}
