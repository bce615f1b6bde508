package curseforge

import (
	"fmt"

	"github.com/docker/go-units"
)

var fileStatusNames = map[int]string{
	1:  "Processing",
	2:  "ChangesRequired",
	3:  "UnderReview",
	4:  "Approved",
	5:  "Rejected",
	6:  "MalwareDetected",
	7:  "Deleted",
	8:  "Archived",
	9:  "Testing",
	10: "Released",
	11: "ReadyForReview",
	12: "Deprecated",
	13: "Baking",
	14: "AwaitingPublishing",
	15: "FailedPublishing",
}

var releaseTypeNames = map[int]string{
	1: "Release",
	2: "Beta",
	3: "Alpha",
}

var hashAlgoNames = map[int]string{
	1: "SHA1",
	2: "MD5",
}

var relationTypeNames = map[int]string{
	1: "EmbeddedLibrary",
	2: "OptionalDependency",
	3: "RequiredDependency",
	4: "Tool",
	5: "Incompatible",
	6: "Include",
}

// FileStatusName names a file status. Zero is read as Processing.
func FileStatusName(status int) string {
	return lookupName(fileStatusNames, status, "Unknown")
}

// ReleaseTypeName names a release type. Zero is read as Release.
func ReleaseTypeName(releaseType int) string {
	return lookupName(releaseTypeNames, releaseType, "Unknown")
}

// HashAlgorithmName names a hash algorithm. Zero is read as SHA1.
func HashAlgorithmName(algo int) string {
	return lookupName(hashAlgoNames, algo, fmt.Sprintf("Unknown (%d)", algo))
}

// RelationTypeName names a dependency relation. Zero is read as EmbeddedLibrary.
func RelationTypeName(relationType int) string {
	return lookupName(relationTypeNames, relationType, fmt.Sprintf("Unknown (%d)", relationType))
}

// String renders the hash as "SHA1: <value>".
func (h FileHash) String() string {
	return HashAlgorithmName(h.Algo) + ": " + h.Value
}

// String renders the dependency as "mod 306612 (RequiredDependency)".
func (d FileDependency) String() string {
	return fmt.Sprintf("mod %d (%s)", d.ModID, RelationTypeName(d.RelationType))
}

func lookupName(names map[int]string, value int, fallback string) string {
	if value == 0 {
		value = 1
	}
	if name, ok := names[value]; ok {
		return name
	}
	return fallback
}

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with two decimals in base-1024 units,
// e.g. "1.50 MB". Zero or negative sizes are "Unknown".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "Unknown"
	}
	return units.CustomSize("%.2f %s", float64(bytes), 1024.0, sizeUnits)
}
