package model_test

import (
	"testing"

	model "github.com/okian/harmony/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestNormalizeKey(t *testing.T) {
	convey.Convey("Given names with mixed case and padding", t, func() {
		convey.Convey("Then they normalize to the same key", func() {
			convey.So(model.NormalizeKey("  Data Entry "), convey.ShouldEqual, "data entry")
			convey.So(model.NormalizeKey("DATA ENTRY"), convey.ShouldEqual, model.NormalizeKey("data entry"))
		})
	})
}

func TestTeam(t *testing.T) {
	convey.Convey("Given a team of three", t, func() {
		team := model.NewTeam("A", "B", "C")

		convey.Convey("Then it lists the three pairs once each", func() {
			convey.So(team.Pairs(), convey.ShouldResemble, [3][2]string{{"A", "B"}, {"A", "C"}, {"B", "C"}})
		})

		convey.Convey("And it renders as a comma separated list", func() {
			convey.So(team.String(), convey.ShouldEqual, "A, B, C")
		})
	})
}
