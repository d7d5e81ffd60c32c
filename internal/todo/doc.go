// Package todo holds the in-memory task model.
//
// A Task is created once from free text and a Category and is never edited;
// the only mutations on a List are Add and Remove. Tasks keep insertion order.
//
// # Categories
//
// The category set is closed and fixed at build time:
//
//   - "Generale": fallback, gray
//   - "Lavoro": orange
//   - "Shopping": green
//   - "Finanze": red
//   - "Studio": blue
//
// A Category carries its name and color together so the two always come from
// the same classification.
package todo
