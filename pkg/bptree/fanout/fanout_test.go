package fanout_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"bptree/pkg/bptree/fanout"
)

func TestEstimateGrowsWithOrder(t *testing.T) {
	Convey("Given internal node estimates for int keys and uint16 handles", t, func() {
		small := fanout.EstimateInternal[int, uint16](4)
		large := fanout.EstimateInternal[int, uint16](64)

		Convey("A larger order estimates a larger footprint", func() {
			So(large, ShouldBeGreaterThan, small)
		})
	})

	Convey("Given leaf node estimates for int keys and values", t, func() {
		small := fanout.EstimateLeaf[int, int, uint16](4)
		large := fanout.EstimateLeaf[int, int, uint16](64)

		Convey("A larger order estimates a larger footprint", func() {
			So(large, ShouldBeGreaterThan, small)
		})
	})
}

func TestPickInternal(t *testing.T) {
	Convey("Given a 256-byte budget for int keys and uint16 handles", t, func() {
		budget := uintptr(256)

		order := fanout.PickInternal[int, uint16](budget, 2, 64)

		Convey("The picked order fits the budget", func() {
			So(fanout.EstimateInternal[int, uint16](order), ShouldBeLessThanOrEqualTo, budget)
		})

		Convey("The next order up would not fit (or we're at the search ceiling)", func() {
			if order < 64 {
				So(fanout.EstimateInternal[int, uint16](order+1), ShouldBeGreaterThan, budget)
			}
		})
	})
}

func TestPickLeaf(t *testing.T) {
	Convey("Given a 256-byte budget for int keys, int values, uint16 handles", t, func() {
		budget := uintptr(256)

		order := fanout.PickLeaf[int, int, uint16](budget, 2, 64)

		Convey("The picked order fits the budget", func() {
			So(fanout.EstimateLeaf[int, int, uint16](order), ShouldBeLessThanOrEqualTo, budget)
		})

		Convey("The next order up would not fit (or we're at the search ceiling)", func() {
			if order < 64 {
				So(fanout.EstimateLeaf[int, int, uint16](order+1), ShouldBeGreaterThan, budget)
			}
		})
	})
}

func TestPickReturnsHighWhenItAlreadyFits(t *testing.T) {
	Convey("Given a budget generous enough for the search ceiling", t, func() {
		budget := uintptr(1 << 20)

		order := fanout.PickInternal[int, uint16](budget, 2, 16)

		So(order, ShouldEqual, 16)
	})
}
