package commands

const banner = `
    .___                    .__          __      _____
  __| _/______  ____ ______ |  |   _____/  |_  _/ ____\___________  ____   ____
 / __ |\_  __ \/  _ \\____ \|  | _/ __ \   __\ \   __\/  _ \_  __ \/ ___\_/ __ \
/ /_/ | |  | \(  <_> )  |_> >  |_\  ___/|  |    |  | (  <_> )  | \/ /_/  >  ___/
\____ | |__|   \____/|   __/|____/\___  >__|    |__|  \____/|__|  \___  / \___  >
     \/              |__|             \/                         /_____/      \/
`
