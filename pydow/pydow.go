package pydow

// Copyright 2018 The go-python Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/go-python/gpython/py"

	"github.com/dow-systems/godow/godow"
	"github.com/dow-systems/godow/libdow"
	"github.com/dow-systems/godow/libdow/catalog"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyWordType       = py.NewType("Word", "a double occurrence word over signed generators")
	pyWordStreamType = py.NewType("WordStream", "godow.WordStream")
	pyCatalogType    = py.NewType("Catalog", "godow.Catalog")
	pyWorkspaceType  = py.NewType("Workspace", "collects active session resources and catalogs")
)

type pyWord struct {
	godow.Word
}

func (w pyWord) Type() *py.Type {
	return pyWordType
}

func (w pyWord) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	w.WriteAsString(&writer, godow.DefaultPrintOpts)
	return py.String(writer.String()), nil
}

func (w pyWord) M__repr__() (py.Object, error) {
	return w.M__str__()
}

// Arg 1 (str): word literal expression, e.g. "(1,2,-1,-2)"
func py_NewWord(module py.Object, args py.Tuple) (py.Object, error) {
	var expr string
	err := py.LoadTuple(args, []interface{}{&expr})
	if err != nil {
		return nil, err
	}

	w, err := libdow.ParseWord(expr)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.Object(pyWord{w}), nil
}

func py_Word_NumLetters(self py.Object, args py.Tuple) (py.Object, error) {
	w := self.(pyWord)
	return py.Object(py.Int(len(w.Word))), nil
}

func py_Word_Alphabet(self py.Object, args py.Tuple) (py.Object, error) {
	w := self.(pyWord)
	return py.Object(py.Int(w.GetInfo().Alphabet)), nil
}

func py_Word_Reduce(self py.Object, args py.Tuple) (py.Object, error) {
	w := self.(pyWord)
	return py.Object(pyWord{libdow.Reduce(w.Word)}), nil
}

func py_Word_Normalize(self py.Object, args py.Tuple) (py.Object, error) {
	w := self.(pyWord)
	return py.Object(pyWord{libdow.Normalize(w.Word)}), nil
}

func py_Word_CyclicNorm(self py.Object, args py.Tuple) (py.Object, error) {
	w := self.(pyWord)
	return py.Object(pyWord{libdow.CyclicNormalize(w.Word)}), nil
}

func py_Word_CyclicClass(self py.Object, args py.Tuple) (py.Object, error) {
	w := self.(pyWord)
	class := libdow.CyclicClass(w.Word)

	members := make(py.Tuple, len(class))
	for i, member := range class {
		members[i] = pyWord{member}
	}
	return py.Object(members), nil
}

// Tests whether this word's derived graph is a simple cycle through all
// vertices of its alphabet.
func py_Word_IsCycle(self py.Object, args py.Tuple) (py.Object, error) {
	w := self.(pyWord)
	n := int(w.GetInfo().Alphabet)
	if len(args) > 0 {
		argN, err := py.GetInt(args[0])
		if err != nil {
			return nil, err
		}
		n = int(argN)
	}

	isCycle, err := libdow.IsCycleWord(w.Word, n)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	if isCycle {
		return py.True, nil
	}
	return py.False, nil
}

// Streams every member of this word's orbit under the letter substitution
// maps of its alphabet.
func py_Word_Orbit(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	w := self.(pyWord)
	n := int(w.GetInfo().Alphabet)

	opts := libdow.OrbitOpts{}
	var maxClasses int
	py.LoadAttr(kwargs, "max_classes", &maxClasses)
	opts.MaxClasses = maxClasses

	orbit, err := libdow.AutomorphismOrbit(w.Word, n, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}

	next := godow.NewWordStream()
	go func() {
		for _, member := range orbit.Members {
			next.Outlet <- member
		}
		next.Close()
	}()
	return wrapWordStream(next), nil
}

func py_Word_Stream(self py.Object, args py.Tuple) (py.Object, error) {
	w := self.(pyWord)
	return wrapWordStream(godow.StreamWord(w.Word)), nil
}

// Arg 1 (int): alphabet size
func py_RawWords(module py.Object, args py.Tuple) (py.Object, error) {
	var n py.Object
	err := py.ParseTuple(args, "i", &n)
	if err != nil {
		return nil, err
	}
	return wrapWordStream(libdow.EnumRawWords(int(n.(py.Int)))), nil
}

// Arg 1 (int): alphabet size
func py_GoodWords(module py.Object, args py.Tuple) (py.Object, error) {
	var n py.Object
	err := py.ParseTuple(args, "i", &n)
	if err != nil {
		return nil, err
	}
	return wrapWordStream(libdow.EnumGoodWords(int(n.(py.Int)))), nil
}

// Arg 1 (int): alphabet size min
// Arg 2 (int): alphabet size max
func py_Census(module py.Object, args py.Tuple) (py.Object, error) {
	var nMin, nMax py.Object
	err := py.ParseTuple(args, "ii", &nMin, &nMax)
	if err != nil {
		return nil, err
	}

	stream := libdow.CensusStream(int(nMin.(py.Int)), int(nMax.(py.Int)), libdow.CensusOpts{})
	return wrapWordStream(stream), nil
}

const kWorkspaceAttr = "_Workspace"

type Workspace struct {
	CatalogCtx godow.CatalogContext
}

func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		ws := &Workspace{
			CatalogCtx: godow.NewCatalogContext(),
		}
		wsObj = ws
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

// Arg 1 (int): highest alphabet size the catalog will see
func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var alphabetMax int32
	err := py.LoadTuple(args, []interface{}{&alphabetMax})
	if err != nil {
		return nil, err
	}

	cat, err := catalog.OpenCatalog(ws.CatalogCtx, godow.CatalogOpts{
		AlphabetMax: alphabetMax,
	})
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	return py.Object(pyCatalog{cat}), nil
}

type pyCatalog struct {
	godow.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.Catalog != nil {
		cat.Close()
	}
	return py.None, nil
}

func py_Catalog_NumWords(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	n, err := py.GetInt(args[0])
	if err != nil {
		return nil, err
	}

	numWords := cat.NumWords(byte(n))
	return py.Int(numWords), nil
}

func py_Catalog_NumOrbits(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	n, err := py.GetInt(args[0])
	if err != nil {
		return nil, err
	}

	numOrbits := cat.NumOrbits(byte(n))
	return py.Int(numOrbits), nil
}

func py_Catalog_HasWord(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	w, err := getWordFromWordObj(args[0])
	if err != nil {
		return nil, err
	}
	if cat.HasWord(w) {
		return py.True, nil
	}
	return py.False, nil
}

// Arg 1 (int): alphabet size
func py_Catalog_OrbitReps(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	n, err := py.GetInt(args[0])
	if err != nil {
		return nil, err
	}

	next := godow.NewWordStream()
	go cat.SelectOrbitReps(byte(n), next.Outlet)
	return wrapWordStream(next), nil
}

// Arg 1 (int): alphabet size min
// Arg 2 (int): alphabet size max
func py_Catalog_Census(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	var nMin, nMax py.Object
	err := py.ParseTuple(args, "ii", &nMin, &nMax)
	if err != nil {
		return nil, err
	}

	stream := libdow.CensusStream(int(nMin.(py.Int)), int(nMax.(py.Int)), libdow.CensusOpts{
		Catalog: cat.Catalog,
	})
	return wrapWordStream(stream), nil
}

func getWordFromWordObj(obj py.Object) (godow.Word, error) {
	if w, isWord := obj.(pyWord); isWord {
		return w.Word, nil
	}
	if expr, isStr := obj.(py.String); isStr {
		w, err := libdow.ParseWord(string(expr))
		if err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
		return w, nil
	}
	return nil, py.ExceptionNewf(py.TypeError, "expected Word object (got %v)", obj.Type().Name)
}

type wordStream struct {
	*godow.WordStream
}

func (stream wordStream) Type() *py.Type {
	return pyWordStreamType
}

func wrapWordStream(stream *godow.WordStream) py.Object {
	return py.Object(wordStream{stream})
}

func py_WordStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(wordStream)
	count := stream.PullAll()
	return py.Int(count), nil
}

func py_WordStream_AddTo(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(wordStream)

	cat, isCat := args[0].(pyCatalog)
	if !isCat {
		attr, err := py.GetAttrString(args[0], "_cat")
		if err != nil {
			return nil, err
		}
		if cat, isCat = attr.(pyCatalog); !isCat {
			return nil, py.ExceptionNewf(py.TypeError, "expected Catalog object (got %v)", args[0].Type().Name)
		}
	}

	next := stream.AddTo(cat, godow.AddWordOpts{})
	return wrapWordStream(next), nil
}

func py_WordStream_DropDupes(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(wordStream)

	// A memory resident set that gets auto-closed when the stream closes
	set := libdow.NewCanonicSet()
	next := stream.AddTo(set, godow.AddWordOpts{
		AutoCloseTarget: true,
	})
	return wrapWordStream(next), nil
}

// Forwards only words whose derived graph is a simple cycle.
func py_WordStream_Cycles(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(wordStream)

	next := stream.SelectFunc(func(w godow.Word) bool {
		isCycle, err := libdow.IsCycleWord(w, int(w.GetInfo().Alphabet))
		return err == nil && isCycle
	})
	return wrapWordStream(next), nil
}

type echoToWriter struct {
	stdout *os.File
	to     io.WriteCloser
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	var (
		n   int
		err error
	)
	if echo.to == nil {
		n, err = echo.stdout.Write(buf)
	} else {
		n, err = echo.to.Write(buf)
	}
	return n, err
}

func (echo *echoToWriter) Close() error {
	if echo.to != nil {
		return echo.to.Close()
	}
	return nil
}

var gOutCount = int32(0)

// See lib/pydow.py Print() docs
func py_WordStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(wordStream)
	var pathname string

	opts := godow.DefaultPrintOpts

	py.LoadTuple(args, []interface{}{&opts.Label})
	if opts.Label == "" {
		py.LoadAttr(kwargs, "label", &opts.Label)
	}

	atomic.AddInt32(&gOutCount, 1)
	if opts.Label == "" {
		opts.Label = fmt.Sprintf("out[%d]", gOutCount)
	}

	py.LoadAttr(kwargs, "alphabet", &opts.Alphabet)
	py.LoadAttr(kwargs, "length", &opts.Length)
	py.LoadAttr(kwargs, "file", &pathname)

	writer := &echoToWriter{
		stdout: os.Stdout,
	}
	if len(pathname) > 0 {
		os.MkdirAll(filepath.Dir(pathname), 0700)

		file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		writer.to = file
	}

	next := stream.Print(writer, opts)
	return wrapWordStream(next), nil
}

func init() {

	/////////////////////////////////
	// Word
	{
		pyWordType.Dict["NumLetters"] = py.MustNewMethod("NumLetters", py_Word_NumLetters, 0, "")
		pyWordType.Dict["Alphabet"] = py.MustNewMethod("Alphabet", py_Word_Alphabet, 0, "")
		pyWordType.Dict["Reduce"] = py.MustNewMethod("Reduce", py_Word_Reduce, 0, "returns this word's free reduction")
		pyWordType.Dict["Normalize"] = py.MustNewMethod("Normalize", py_Word_Normalize, 0, "")
		pyWordType.Dict["CyclicNorm"] = py.MustNewMethod("CyclicNorm", py_Word_CyclicNorm, 0, "")
		pyWordType.Dict["CyclicClass"] = py.MustNewMethod("CyclicClass", py_Word_CyclicClass, 0, "")
		pyWordType.Dict["IsCycle"] = py.MustNewMethod("IsCycle", py_Word_IsCycle, 0, "")
		pyWordType.Dict["Orbit"] = py.MustNewMethod("Orbit", py_Word_Orbit, 0, "")
		pyWordType.Dict["Stream"] = py.MustNewMethod("Stream", py_Word_Stream, 0, "")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["NumWords"] = py.MustNewMethod("NumWords", py_Catalog_NumWords, 0, "")
		pyCatalogType.Dict["NumOrbits"] = py.MustNewMethod("NumOrbits", py_Catalog_NumOrbits, 0, "")
		pyCatalogType.Dict["HasWord"] = py.MustNewMethod("HasWord", py_Catalog_HasWord, 0, "")
		pyCatalogType.Dict["OrbitReps"] = py.MustNewMethod("OrbitReps", py_Catalog_OrbitReps, 0, "")
		pyCatalogType.Dict["Census"] = py.MustNewMethod("Census", py_Catalog_Census, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
	}

	/////////////////////////////////
	// WordStream
	{
		pyWordStreamType.Dict["Go"] = py.MustNewMethod("Go", py_WordStream_Go, 0, "counts the number of words output from the WordStream")
		pyWordStreamType.Dict["Print"] = py.MustNewMethod("Print", py_WordStream_Print, 0, "prints each word from the WordStream")
		pyWordStreamType.Dict["AddTo"] = py.MustNewMethod("AddTo", py_WordStream_AddTo, 0, "")
		pyWordStreamType.Dict["DropDupes"] = py.MustNewMethod("DropDupes", py_WordStream_DropDupes, 0, "")
		pyWordStreamType.Dict["Cycles"] = py.MustNewMethod("Cycles", py_WordStream_Cycles, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("Word", py_NewWord, 0, ""),
			py.MustNewMethod("RawWords", py_RawWords, 0, ""),
			py.MustNewMethod("GoodWords", py_GoodWords, 0, ""),
			py.MustNewMethod("Census", py_Census, 0, ""),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"PY_VERSION":  py.String("v3.4.0"),
			"MAX_GEN":     py.Int(godow.MaxGenerators),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_pydow",
				Doc:  "double occurrence word census gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})

	}
}
