package testsuite

import "strconv"

// Package represents a package and its dependencies in an in-memory test graph.
type Package struct {
	Name         string
	Dependencies []*Package
}

// AddDependency makes this package depend on another package.
func (pkg *Package) AddDependency(to *Package) {
	pkg.Dependencies = append(pkg.Dependencies, to)
}

// AllPackages maintains a registry of all packages used in a testing scenario,
// ensuring the same logical package always resolves to the same instance.
type AllPackages struct {
	Packages []*Package
}

// Names returns the names of all known packages.
func (allPackages *AllPackages) Names() []string {
	names := make([]string, 0, len(allPackages.Packages))
	for _, p := range allPackages.Packages {
		names = append(names, p.Name)
	}
	return names
}

// Named finds or creates a package with the given name.
func (allPackages *AllPackages) Named(name string) *Package {
	for _, p := range allPackages.Packages {
		if p.Name == name {
			return p
		}
	}
	pkg := &Package{Name: name, Dependencies: make([]*Package, 0)}
	allPackages.Packages = append(allPackages.Packages, pkg)
	return pkg
}

// GenerateLayeredGraph builds a synthetic dependency DAG of numLayers layers
// with layerWidth packages each: every package in layer N depends on every
// package in layer N-1. This stands in for testing/suite's embedded Homebrew
// dependency dump, giving the harness a deterministic, self-contained graph of
// any requested size without external data.
func GenerateLayeredGraph(numLayers, layerWidth int) *AllPackages {
	all := &AllPackages{}
	if numLayers < 1 || layerWidth < 1 {
		return all
	}

	var previousLayer []*Package
	for layer := 0; layer < numLayers; layer++ {
		currentLayer := make([]*Package, 0, layerWidth)
		for i := 0; i < layerWidth; i++ {
			pkg := all.Named(packageName(layer, i))
			for _, dep := range previousLayer {
				pkg.AddDependency(dep)
			}
			currentLayer = append(currentLayer, pkg)
		}
		previousLayer = currentLayer
	}

	return all
}

func packageName(layer, index int) string {
	return "pkg-" + strconv.Itoa(layer) + "-" + strconv.Itoa(index)
}

// SegmentListPackages breaks a list of packages into at most maxNumberOfSegments
// roughly equal-sized segments, preserving order within each segment.
func SegmentListPackages(fullList []*Package, maxNumberOfSegments int) [][]*Package {
	fullListSize := len(fullList)
	result := [][]*Package{}

	if maxNumberOfSegments < 1 {
		return append(result, fullList)
	}
	if maxNumberOfSegments > fullListSize {
		maxNumberOfSegments = fullListSize
	}
	if maxNumberOfSegments == 0 {
		return result
	}

	optimalNumberOfElementsPerSegment := fullListSize / maxNumberOfSegments

	beginning := 0
	for i := 0; i < (maxNumberOfSegments - 1); i++ {
		end := beginning + optimalNumberOfElementsPerSegment
		result = append(result, fullList[beginning:end])
		beginning += optimalNumberOfElementsPerSegment
	}
	if beginning < fullListSize {
		result = append(result, fullList[beginning:])
	}

	return result
}
