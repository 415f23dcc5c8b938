package dataset

import (
	"path"
	"regexp"
	"sort"
	"time"
)

// StampLayout is the timestamp embedded in result file names, e.g.
// questions_20250114_093000.csv. All files sharing a stamp form one upload.
const StampLayout = "20060102_150405"

var keyPattern = regexp.MustCompile(`^([a-z][a-z0-9_]*)_(\d{8}_\d{6})\.csv$`)

type ObjectInfo struct {
	Dataset string `json:"dataset"`
	Key     string `json:"key"`
	Size    int64  `json:"size"`
}

// Batch is one complete fetch: the newest upload's tables plus enough
// bookkeeping for the data-as-of caption and the diagnostic report.
type Batch struct {
	Stamp     string            `json:"stamp"`
	Timestamp time.Time         `json:"timestamp"`
	Tables    map[string]*Table `json:"tables"`
	Objects   []ObjectInfo      `json:"objects"`
	FetchedAt time.Time         `json:"fetched_at"`
}

func (b *Batch) Table(name string) *Table {
	if b == nil {
		return nil
	}
	return b.Tables[name]
}

// ParseKey splits an object key into dataset name and batch stamp. Keys that
// do not follow the naming convention report ok=false.
func ParseKey(key string) (name, stamp string, ok bool) {
	m := keyPattern.FindStringSubmatch(path.Base(key))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

type listedObject struct {
	Key  string
	Size int64
}

// selectLatest groups listed objects by stamp and picks the newest batch.
// Stamps that include the questions dataset win over newer stamps that do
// not, and keys with foreign names are ignored.
func selectLatest(objects []listedObject) (string, []ObjectInfo) {
	groups := make(map[string][]ObjectInfo)
	hasQuestions := make(map[string]bool)
	for _, o := range objects {
		name, stamp, ok := ParseKey(o.Key)
		if !ok || !KnownDataset(name) {
			continue
		}
		groups[stamp] = append(groups[stamp], ObjectInfo{Dataset: name, Key: o.Key, Size: o.Size})
		if name == DatasetQuestions {
			hasQuestions[stamp] = true
		}
	}
	if len(groups) == 0 {
		return "", nil
	}

	stamps := make([]string, 0, len(groups))
	for s := range groups {
		stamps = append(stamps, s)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(stamps)))

	for _, s := range stamps {
		if hasQuestions[s] {
			return s, groups[s]
		}
	}
	return stamps[0], groups[stamps[0]]
}
