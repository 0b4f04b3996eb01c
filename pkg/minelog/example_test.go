package minelog_test

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"github.com/minelog/minelog-go/pkg/minelog"
)

// exampleDir creates a small log directory for the examples.
func exampleDir() string {
	dir, err := os.MkdirTemp("", "minelog-example-*")
	if err != nil {
		log.Fatal(err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte("[09:00:00] [Server thread/INFO]: Steve joined the game\n" +
		"[09:00:02] [Server thread/INFO]: <Steve> good morning\n"))
	zw.Close()
	os.WriteFile(filepath.Join(dir, "2024-01-02-1.log.gz"), buf.Bytes(), 0644)

	os.WriteFile(filepath.Join(dir, "latest.log"), []byte(
		"[10:00:00] [Server thread/INFO]: Alex joined the game\n"+
			"[10:00:01] [Server thread/INFO]: Steve joined the game\n"+
			"[10:00:03] [Server thread/INFO]: <Alex> hi\n"), 0644)
	return dir
}

// ExampleSession_Search lists every player that joined, once, sorted.
func ExampleSession_Search() {
	dir := exampleDir()
	defer os.RemoveAll(dir)

	s, err := minelog.New(dir)
	if err != nil {
		log.Fatal(err)
	}

	for name, err := range s.Search(context.Background(),
		[]byte(`^\[[0-9:]+\] \[Server thread/INFO\]: (\w+) joined the game$`),
		minelog.WithReplacement([]byte(`\1`)),
		minelog.WithUnique(true),
		minelog.WithSort(true),
	) {
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s\n", name)
	}
	// Output:
	// Alex
	// Steve
}

// ExampleSession_Matches shows where each chat message was found.
func ExampleSession_Matches() {
	dir := exampleDir()
	defer os.RemoveAll(dir)

	s, err := minelog.New(dir)
	if err != nil {
		log.Fatal(err)
	}

	for m, err := range s.Matches(context.Background(), []byte(`<(?P<who>\w+)> (?P<msg>.*)$`)) {
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s %q %s: %s\n", m.Source.Name, m.Date(), m.NamedGroup("who"), m.NamedGroup("msg"))
	}
	// Output:
	// 2024-01-02-1.log.gz "2024-01-02" Steve: good morning
	// latest.log "" Alex: hi
}

// ExampleCompile shows that text patterns must be converted explicitly.
func ExampleCompile() {
	_, err := minelog.Compile("ERROR")
	fmt.Println(err)

	p, err := minelog.Compile([]byte(`^ERROR`))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(p)
	// Output:
	// pattern must be []byte, *minelog.Pattern or *regexp.Regexp: got string
	// (?m)^ERROR
}
