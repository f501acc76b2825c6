package driver

// Gene catalogs live in the graph as
//
//	(:Species {key})-[:HAS_GENE {position}]->(:Gene {species, key, ...})
//	(:Gene)-[:INCOMPATIBLE_WITH]->(:Gene)
//
// Gene nodes are scoped by species so two species may reuse a gene key.

var IndexQueries = []string{
	"CREATE INDEX ON :Species(key);",
	"CREATE INDEX ON :Gene(species);",
	"CREATE INDEX ON :Gene(key);",
}

const (
	ListSpeciesQuery = `
		MATCH (s:Species)
		RETURN s.key AS key
		ORDER BY key
	`

	GetCatalogQuery = `
		MATCH (s:Species {key: $species})
		OPTIONAL MATCH (s)-[h:HAS_GENE]->(g:Gene)
		OPTIONAL MATCH (g)-[:INCOMPATIBLE_WITH]->(o:Gene)
		WITH s, h, g, collect(o.key) AS incompatible
		RETURN s.key AS species,
			s.name AS species_name,
			g.key AS key,
			g.name AS name,
			g.inheritance_mode AS inheritance_mode,
			g.super_label AS super_label,
			g.visible AS visible,
			incompatible,
			h.position AS position
		ORDER BY position
	`

	SaveSpeciesQuery = `
		MERGE (s:Species {key: $species})
		SET s.name = $name
		WITH s
		OPTIONAL MATCH (s)-[h:HAS_GENE]->(:Gene)
		DELETE h
		RETURN s.key AS key
	`

	SaveGeneQuery = `
		MATCH (s:Species {key: $species})
		MERGE (g:Gene {species: $species, key: $key})
		SET g.name = $name,
			g.inheritance_mode = $inheritance_mode,
			g.super_label = $super_label,
			g.visible = $visible
		MERGE (s)-[h:HAS_GENE]->(g)
		SET h.position = $position
		WITH g
		OPTIONAL MATCH (g)-[r:INCOMPATIBLE_WITH]->(:Gene)
		DELETE r
		RETURN g.key AS key
	`

	LinkIncompatibleQuery = `
		MATCH (g:Gene {species: $species, key: $key})
		MATCH (o:Gene {species: $species, key: $other})
		MERGE (g)-[:INCOMPATIBLE_WITH]->(o)
		RETURN g.key AS key
	`

	DeleteSpeciesQuery = `
		MATCH (s:Species {key: $species})
		OPTIONAL MATCH (g:Gene {species: $species})
		DETACH DELETE s, g
	`
)
