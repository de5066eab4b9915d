package dataset

const (
	// EuclidAppName is the application name the Euclid cache directory is derived from
	EuclidAppName = "eggs-zoo-connect"

	// EuclidQ1MorphologyDOI is the Zenodo record of the Euclid Q1 morphology catalogue
	EuclidQ1MorphologyDOI = "doi:10.5281/zenodo.15106473"

	// MorphologyCatalogue is the morphology catalogue file name
	MorphologyCatalogue = "morphology_catalogue.parquet"
)

// EuclidQ1MorphologyRegistry returns the file registry of the Euclid Q1 morphology dataset
func EuclidQ1MorphologyRegistry() map[string]string {
	return map[string]string{
		MorphologyCatalogue: "md5:79e7880d5989e05ec23205782c30025a",
	}
}

// EuclidQ1Morphology creates the descriptor of the Euclid Q1 morphology dataset.
func EuclidQ1Morphology(opts ...Option) (*Descriptor, error) {
	return New(EuclidAppName, EuclidQ1MorphologyDOI, EuclidQ1MorphologyRegistry(), opts...)
}
