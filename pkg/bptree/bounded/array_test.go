package bounded_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"bptree/pkg/bptree/bperr"
	"bptree/pkg/bptree/bounded"
)

func TestArray(t *testing.T) {
	Convey("Given an Array[int] with capacity 4", t, func() {
		a := bounded.New[int](4)

		So(a.Len(), ShouldEqual, 0)
		So(a.Cap(), ShouldEqual, 4)
		So(a.Empty(), ShouldBeTrue)
		So(a.Full(), ShouldBeFalse)

		Convey("When pushing up to capacity", func() {
			for _, v := range []int{1, 2, 3, 4} {
				So(a.PushBack(v), ShouldBeNil)
			}

			So(a.Len(), ShouldEqual, 4)
			So(a.Full(), ShouldBeTrue)

			Convey("Pushing past capacity fails with CapacityExceeded", func() {
				err := a.PushBack(5)

				So(err, ShouldNotBeNil)
				_, ok := err.(*bperr.CapacityExceededError)
				So(ok, ShouldBeTrue)
			})

			Convey("Front and back report the extremes", func() {
				front, ok := a.Front()
				So(ok, ShouldBeTrue)
				So(front, ShouldEqual, 1)

				back, ok := a.Back()
				So(ok, ShouldBeTrue)
				So(back, ShouldEqual, 4)
			})

			Convey("Get is bounds-checked", func() {
				v, err := a.Get(1)
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 2)

				_, err = a.Get(4)
				So(err, ShouldNotBeNil)
				_, ok := err.(*bperr.OutOfRangeError)
				So(ok, ShouldBeTrue)
			})

			Convey("PopBack removes the tail", func() {
				v := a.PopBack()
				So(v, ShouldEqual, 4)
				So(a.Len(), ShouldEqual, 3)
			})

			Convey("Erase shifts the tail left", func() {
				a.Erase(1)
				So(a.Slice(), ShouldResemble, []int{1, 3, 4})
			})

			Convey("EraseRange removes a block", func() {
				a.EraseRange(1, 3)
				So(a.Slice(), ShouldResemble, []int{1, 4})
			})

			Convey("Clear empties the array but preserves capacity", func() {
				a.Clear()
				So(a.Len(), ShouldEqual, 0)
				So(a.Cap(), ShouldEqual, 4)
			})
		})

		Convey("Insert shifts the tail right", func() {
			So(a.PushBack(1), ShouldBeNil)
			So(a.PushBack(3), ShouldBeNil)

			So(a.Insert(1, 2), ShouldBeNil)

			So(a.Slice(), ShouldResemble, []int{1, 2, 3})
		})

		Convey("InsertGap opens n zeroed slots", func() {
			So(a.PushBack(1), ShouldBeNil)
			So(a.PushBack(4), ShouldBeNil)

			So(a.InsertGap(1, 2), ShouldBeNil)

			So(a.Slice(), ShouldResemble, []int{1, 0, 0, 4})

			a.Set(1, 2)
			a.Set(2, 3)
			So(a.Slice(), ShouldResemble, []int{1, 2, 3, 4})
		})

		Convey("InsertGap fails when it would exceed capacity", func() {
			So(a.PushBack(1), ShouldBeNil)
			So(a.PushBack(2), ShouldBeNil)
			So(a.PushBack(3), ShouldBeNil)

			err := a.InsertGap(1, 2)

			So(err, ShouldNotBeNil)
			_, ok := err.(*bperr.CapacityExceededError)
			So(ok, ShouldBeTrue)
		})

		Convey("Resize grows by appending and truncates by clearing", func() {
			a.Resize(3, 9)
			So(a.Slice(), ShouldResemble, []int{9, 9, 9})

			a.Resize(1, 0)
			So(a.Slice(), ShouldResemble, []int{9})
		})

		Convey("Clone is independent of the original", func() {
			So(a.PushBack(1), ShouldBeNil)

			clone := a.Clone()
			So(clone.PushBack(2), ShouldBeNil)

			So(a.Len(), ShouldEqual, 1)
			So(clone.Len(), ShouldEqual, 2)
		})

		Convey("Equal compares element-wise", func() {
			So(a.PushBack(1), ShouldBeNil)
			So(a.PushBack(2), ShouldBeNil)

			other := bounded.New[int](4)
			So(other.PushBack(1), ShouldBeNil)
			So(other.PushBack(2), ShouldBeNil)

			eq := func(x, y int) bool { return x == y }

			So(a.Equal(other, eq), ShouldBeTrue)

			So(other.PushBack(3), ShouldBeNil)
			So(a.Equal(other, eq), ShouldBeFalse)
		})
	})
}

func TestNewFromPanicsOnOversizedInit(t *testing.T) {
	Convey("NewFrom panics when init exceeds capacity", t, func() {
		So(func() { bounded.NewFrom[int](2, []int{1, 2, 3}) }, ShouldPanic)
	})
}
