// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package mdd defines a concrete type for Multi-valued Decision Diagrams (MDD), a
data structure used to efficiently represent discrete functions
f : D_0 x ... x D_{n-1} -> {0,...,M-1} over a fixed set of variables. The
binary case, where every domain and the codomain is {0,1}, specialises to an
ordinary Binary Decision Diagram (BDD).

Basics

Each diagram manager has a fixed number of variables, Varnum, declared when it
is initialized (using the function New), and every variable is represented by
an (integer) index in the interval [0..Varnum), together with a domain size.
Variables also have a level, the position of the variable on the root-to-
terminal path; the manager owns the two bijections between index and level and
updates them whenever it reorders variables. Our library supports the creation
of multiple managers, possibly with different numbers of variables or domains.

Most operations over a diagram return a Node, a reference to a vertex in the
DAG maintained by its manager. We use an integer to represent the address of a
node, with the convention that ids 0..M-1 are reserved for the M terminal
values.

On top of the symbolic engine sits a reliability layer that treats a diagram
as the structure function of a (possibly multi-state) system: given a
per-variable probability table it can propagate probabilities, derive
availability and unavailability, compute direct partial logic derivatives and
importance measures, and enumerate minimal cut and path vectors.

Automatic memory management

The library is written in pure Go, without the need for CGo or any other
dependencies for its core. We piggyback on the garbage collection mechanism
offered by our host language: the manager takes care of node table resizing
and reclamation internally, but "external" references to diagram nodes held
by user code are automatically tracked through a finalizer on the Node handle,
following the same technique used by MuDDy, the ML interface to BuDDy.

Statistics about the node pool and garbage collection are available from
Stats in every build. To unlock logging of some operations, compile your
executable with the build tag `debug`.
*/
package mdd
