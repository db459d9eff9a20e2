package dataset_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/moniker/internal/domain/dataset"
	"github.com/okian/moniker/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// writeCSV drops a temp CSV file and returns its path.
func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "names.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

const sampleCSV = `name,english_name,gender
علی,Ali,male
زهرا,Zahra,female
محمد,Mohammad,male
`

func TestLoad(t *testing.T) {
	Convey("Given a well-formed reference table", t, func() {
		path := writeCSV(t, sampleCSV)

		Convey("When loading it", func() {
			ds, err := dataset.Load(path)

			Convey("Then it should parse every row", func() {
				So(err, ShouldBeNil)
				So(ds.Len(), ShouldEqual, 3)
			})

			Convey("And records should keep their order and fields", func() {
				rec := ds.Record(0)
				So(rec.Native, ShouldEqual, "علی")
				So(rec.English, ShouldEqual, "Ali")
				So(rec.Gender, ShouldEqual, "male")
				So(rec.Index, ShouldEqual, 0)

				So(ds.Record(2).English, ShouldEqual, "Mohammad")
			})
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := dataset.Load(filepath.Join(t.TempDir(), "nope.csv"))

		Convey("Then loading should fail with the load sentinel", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, dataset.ErrLoadDataset), ShouldBeTrue)
		})
	})

	Convey("Given a table without the required headers", t, func() {
		path := writeCSV(t, "first,last\nAli,Karimi\n")
		_, err := dataset.Load(path)

		Convey("Then loading should fail", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, dataset.ErrLoadDataset), ShouldBeTrue)
		})
	})

	Convey("Given a row with an empty required value", t, func() {
		path := writeCSV(t, "name,english_name,gender\nعلی,,male\n")
		_, err := dataset.Load(path)

		Convey("Then loading should fail loudly instead of skipping", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, dataset.ErrLoadDataset), ShouldBeTrue)
		})
	})
}

func TestColumn(t *testing.T) {
	Convey("Given a loaded reference table", t, func() {
		ds, err := dataset.Load(writeCSV(t, sampleCSV))
		So(err, ShouldBeNil)

		Convey("When reading the native column", func() {
			values, err := ds.Column(model.ColumnNative)

			Convey("Then it should return the native spellings in order", func() {
				So(err, ShouldBeNil)
				So(values, ShouldResemble, []string{"علی", "زهرا", "محمد"})
			})
		})

		Convey("When reading the english column", func() {
			values, err := ds.Column(model.ColumnEnglish)

			Convey("Then it should return the English spellings in order", func() {
				So(err, ShouldBeNil)
				So(values, ShouldResemble, []string{"Ali", "Zahra", "Mohammad"})
			})
		})

		Convey("When reading an unknown column", func() {
			_, err := ds.Column(model.Column(42))

			Convey("Then it should fail with the column sentinel", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, dataset.ErrUnknownColumn), ShouldBeTrue)
			})
		})
	})
}
