package tuple_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"bptree/pkg/tuple"
)

func TestTuple2(t *testing.T) {
	Convey("Given a Tuple2", t, func() {
		p := tuple.New2(1, "one")

		Convey("When unpacking it", func() {
			v0, v1 := p.Unpack()

			So(v0, ShouldEqual, 1)
			So(v1, ShouldEqual, "one")
		})

		Convey("When formatting it", func() {
			So(p.String(), ShouldEqual, "(1, one)")
		})
	})
}

func TestTuple3(t *testing.T) {
	Convey("Given a Tuple3", t, func() {
		tr := tuple.New3(1, "one", 1.0)

		Convey("When unpacking it", func() {
			v0, v1, v2 := tr.Unpack()

			So(v0, ShouldEqual, 1)
			So(v1, ShouldEqual, "one")
			So(v2, ShouldEqual, 1.0)
		})

		Convey("When splitting head and tail", func() {
			head, rest := tr.Head()
			So(head, ShouldEqual, 1)
			So(rest, ShouldResemble, tuple.New2("one", 1.0))

			init, tail := tr.Tail()
			So(init, ShouldResemble, tuple.New2(1, "one"))
			So(tail, ShouldEqual, 1.0)
		})
	})
}
