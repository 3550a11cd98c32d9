package phase

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPhaseLabels(t *testing.T) {
	Convey("While rendering phases, labels should sort in execution order", t, func() {
		So(PreTest.String(), ShouldEqual, "00_PRE_TEST")
		So(Pre.String(), ShouldEqual, "01_PRE")
		So(Init.String(), ShouldEqual, "02_INIT")
		So(Warmup.String(), ShouldEqual, "03_WARMUP")
		So(Run.String(), ShouldEqual, "04_RUN")
		So(RunTail.String(), ShouldEqual, "05_RUN_TAIL")
		So(Post.String(), ShouldEqual, "06_POST")
	})

	Convey("Phases outside the known range should render their number", t, func() {
		So(Phase(42).String(), ShouldEqual, "Phase(42)")
		So(Phase(-1).String(), ShouldEqual, "Phase(-1)")
	})
}

func TestPhaseSet(t *testing.T) {
	Convey("While using a phase Set", t, func() {
		Convey("An empty set has no members", func() {
			var set Set
			So(set.Empty(), ShouldBeTrue)
			So(set.Contains(Run), ShouldBeFalse)
		})

		Convey("Added phases become members, others stay out", func() {
			set := NewSet(Warmup, Run)
			So(set.Empty(), ShouldBeFalse)
			So(set.Contains(Warmup), ShouldBeTrue)
			So(set.Contains(Run), ShouldBeTrue)
			So(set.Contains(RunTail), ShouldBeFalse)
			So(set.Contains(PreTest), ShouldBeFalse)
		})

		Convey("Add does not mutate the receiver", func() {
			set := NewSet(Run)
			grown := set.Add(RunTail)
			So(set.Contains(RunTail), ShouldBeFalse)
			So(grown.Contains(RunTail), ShouldBeTrue)
			So(grown.Contains(Run), ShouldBeTrue)
		})
	})
}
