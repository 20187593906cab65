// Notes about the mmcif format...
// A question mark, ?, means a missing value.
// A dot, ., means not appropriate or deliberately left out.
// The first character on a line is decisive. A data item starts
// with "_", a table starts with "loop_" and a line starting with ";"
// opens or closes a multi-line text value. We use these rules to step
// over everything until we reach _atom_site.
// There are entities and chains. The mapping back to old pdb chains,
// according to http://mmcif.wwpdb.org/docs/pdb_to_pdbx_correspondences.html,
// is called _atom_site.auth_asym_id, so that is what we call the chain.
// Residue numbers come from auth_seq_id for the same reason.
package mmcif
