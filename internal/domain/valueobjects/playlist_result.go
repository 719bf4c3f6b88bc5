package valueobjects

// SaveResult is the outcome of writing a playlist
type SaveResult int

const (
	SaveFail SaveResult = iota
	SaveNew
	SaveOverwrite
	SaveCreationLimit
)

// String returns the string representation
func (r SaveResult) String() string {
	switch r {
	case SaveNew:
		return "new"
	case SaveOverwrite:
		return "overwrite"
	case SaveCreationLimit:
		return "creation_limit"
	}
	return "fail"
}

// DeleteResult is the outcome of removing a playlist
type DeleteResult int

const (
	DeleteFail DeleteResult = iota
	DeleteSuccess
	DeleteNotFound
)

// String returns the string representation
func (r DeleteResult) String() string {
	switch r {
	case DeleteSuccess:
		return "success"
	case DeleteNotFound:
		return "not_found"
	}
	return "fail"
}
