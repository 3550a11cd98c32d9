package uuid

import (
	"regexp"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

var uuid4Format = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestUUID(t *testing.T) {
	Convey("Generated uuids have version 4 format", t, func() {
		So(uuid4Format.MatchString(New()), ShouldBeTrue)
	})

	Convey("Two generated uuids differ", t, func() {
		So(New(), ShouldNotEqual, New())
	})
}
