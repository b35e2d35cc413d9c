// Package schema validates state documents against user-supplied JSON
// schemas. Compiled schemas are cached per path so repeated reads and
// writes of the same document pay the compilation cost once.
package schema
