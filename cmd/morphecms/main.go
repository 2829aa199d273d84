// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Command morphecms runs the morphecms content API and its maintenance
// tasks (migrations, seeding).
package main

func main() {
	Execute()
}
